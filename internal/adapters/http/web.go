package web

import (
	"context"
	"net/http"
	"time"

	"serene/internal/adapters/email"
	"serene/internal/adapters/http/middleware"
	"serene/internal/adapters/http/perf"
	"serene/internal/adapters/storage/record"
	"serene/internal/application/orchestrators"
	"serene/internal/domain/schedule"
	"serene/internal/domain/session"
)

// Stores holds all storage dependencies.
type Stores struct {
	Records *record.Store
	Events  []schedule.Event // generated once at startup
}

// Options configures the HTTP surface.
type Options struct {
	CSRFKey       []byte
	SiteOrigin    string
	Production    bool
	SlowRequestMs int
}

// Global stores instance (set by NewMux)
var stores *Stores

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// siteOrigin prefixes share links (set by NewMux)
var siteOrigin = "http://localhost:8080"

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// NewMux wires HTTP handlers for the app. The rate limiter's sweeper stops when ctx is done.
func NewMux(ctx context.Context, s *Stores, collector *perf.Collector, opts Options) http.Handler {
	stores = s
	perfCollector = collector
	if opts.SiteOrigin != "" {
		siteOrigin = opts.SiteOrigin
	}
	middleware.SecureCookies = opts.Production

	mux := http.NewServeMux()
	registerRoutes(mux)

	limiter := middleware.NewRateLimiter(ctx, RateLimitPerSecond, time.Second)

	// Request order: Timing -> RateLimit -> Visitor -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(opts.CSRFKey, siteOrigin, opts.Production),
		middleware.Visitor(resolveSession),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, opts.SlowRequestMs),
	)
}

func resolveSession(ctx context.Context, visitorID string) (session.Session, error) {
	return orchestrators.ExecuteResolveSession(ctx, visitorID, orchestrators.ResolveSessionDeps{
		Users:    stores.Records,
		Sessions: stores.Records,
	})
}
