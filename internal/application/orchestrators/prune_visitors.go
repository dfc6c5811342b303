package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// VisitorPruner drops per-visitor keys that have not been written recently.
type VisitorPruner interface {
	PruneVisitors(ctx context.Context, idle time.Duration) (int64, error)
}

// PruneVisitorsDeps holds dependencies for PruneVisitors.
type PruneVisitorsDeps struct {
	Store VisitorPruner
}

// ExecutePruneVisitors removes visitor namespaces idle for longer than ttl.
// PRE: ttl > 0
// POST: shared collections are untouched
func ExecutePruneVisitors(ctx context.Context, ttl time.Duration, deps PruneVisitorsDeps) (int64, error) {
	if ttl <= 0 {
		return 0, nil
	}
	n, err := deps.Store.PruneVisitors(ctx, ttl)
	if err != nil {
		return 0, fmt.Errorf("prune visitors: %w", err)
	}
	if n > 0 {
		slog.Info("session_event", "event", "visitors_pruned", "keys", n)
	}
	return n, nil
}

// StartPruneWorker runs ExecutePruneVisitors every interval until ctx is done.
func StartPruneWorker(ctx context.Context, ttl, interval time.Duration, deps PruneVisitorsDeps) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				runCtx, cancel := context.WithTimeout(ctx, time.Minute)
				if _, err := ExecutePruneVisitors(runCtx, ttl, deps); err != nil {
					slog.Error("prune_worker_failed", "error", err.Error())
				}
				cancel()
			case <-ctx.Done():
				slog.Info("prune_worker_stopped")
				return
			}
		}
	}()
}
