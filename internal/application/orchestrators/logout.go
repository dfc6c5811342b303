package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"serene/internal/domain/dashboard"
)

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Sessions SessionStore
	Panels   PanelStore
}

// ExecuteLogout clears the visitor's session flags.
// POST: session is Anonymous; no record collection is changed
func ExecuteLogout(ctx context.Context, visitorID string, deps LogoutDeps) error {
	if err := deps.Sessions.ClearSession(ctx, visitorID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if err := deps.Panels.PutPanel(ctx, visitorID, dashboard.PanelNone); err != nil {
		return fmt.Errorf("reset panel: %w", err)
	}
	slog.Info("auth_event", "event", "logout")
	return nil
}
