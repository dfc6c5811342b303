package main

import (
	"context"
	"log"
	"math/rand/v2"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"serene/internal/adapters/email"
	web "serene/internal/adapters/http"
	"serene/internal/adapters/http/perf"
	"serene/internal/adapters/storage"
	"serene/internal/adapters/storage/kv"
	"serene/internal/adapters/storage/record"
	"serene/internal/application/orchestrators"
	"serene/internal/config"
	"serene/internal/domain/schedule"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	schemaVersion, err := storage.SchemaVersion(ctx, db)
	if err != nil {
		log.Fatalf("failed to read schema version: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.Database.SlowQueryMs)
	records := record.New(kv.NewSQLiteStore(timedDB))

	// First run only: an emptied users collection stays empty
	seed := orchestrators.SeedAdminInput{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Email:    cfg.Admin.Email,
		Phone:    cfg.Admin.Phone,
	}
	if err := orchestrators.ExecuteSeedAdmin(ctx, seed, records); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	start := cfg.Schedule.Start
	if start.IsZero() {
		start = time.Now()
	}
	now := time.Now()
	rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix())))
	events := schedule.Generate(start, cfg.Schedule.Weeks, rng)

	if cfg.Email.ResendKey != "" {
		web.SetEmailSender(email.NewResendSender(cfg.Email.ResendKey, cfg.Email.From, cfg.Email.ReplyTo))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(email.NewNoopSender())
		if cfg.IsProduction() {
			log.Println("WARNING: SERENE_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set SERENE_RESEND_KEY for real delivery)")
		}
	}

	orchestrators.StartPruneWorker(ctx, cfg.Database.VisitorTTL, time.Hour,
		orchestrators.PruneVisitorsDeps{Store: records})

	handler := web.NewMux(ctx, &web.Stores{Records: records, Events: events}, collector, web.Options{
		CSRFKey:       cfg.HTTP.CSRFKey,
		SiteOrigin:    cfg.SiteOrigin,
		Production:    cfg.IsProduction(),
		SlowRequestMs: cfg.HTTP.SlowRequestMs,
	})
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Serene %s starting on %s (env=%s, schema=%d, classes=%d)", version, cfg.Addr, cfg.Env, schemaVersion, len(events))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
