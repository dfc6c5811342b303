// Package config loads server settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvProduction is the SERENE_ENV value that enables production checks.
const EnvProduction = "production"

// Config holds every setting the server reads at startup.
type Config struct {
	Env        string
	Addr       string
	SiteOrigin string

	Database Database
	HTTP     HTTP
	Admin    Admin
	Email    Email
	Schedule Schedule
}

// Database configures the SQLite record store.
type Database struct {
	Path        string
	SlowQueryMs int
	VisitorTTL  time.Duration // visitor keys idle longer than this are pruned
}

// HTTP configures the web layer.
type HTTP struct {
	CSRFKey       []byte
	SlowRequestMs int
}

// Admin is the account written by the first-run seed.
type Admin struct {
	Username string
	Password string
	Email    string
	Phone    string
}

// Email configures outbound mail. An empty ResendKey disables delivery.
type Email struct {
	ResendKey string
	From      string
	ReplyTo   string
}

// Schedule configures the generated class calendar.
type Schedule struct {
	Start time.Time // zero means "today" at startup
	Weeks int
}

// Errors returned by FromEnv.
var (
	ErrBadCSRFKey      = errors.New("SERENE_CSRF_KEY must be 64 hex characters (32 bytes)")
	ErrMissingCSRFKey  = errors.New("SERENE_CSRF_KEY is required in production")
	ErrBadScheduleDate = errors.New("SERENE_SCHEDULE_START must be YYYY-MM-DD")
)

// IsProduction reports whether production checks apply.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads .env files (missing files are ignored) and then the process environment.
// Variables already set in the environment win over .env values.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		slog.Debug("config_event", "event", "dotenv_missing")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function.
// PRE: lookup behaves like os.LookupEnv
// POST: returns a fully populated Config or the first invalid setting
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}
	getInt := func(key string, fallback int) int {
		if n, err := strconv.Atoi(get(key, "")); err == nil && n > 0 {
			return n
		}
		return fallback
	}

	cfg := &Config{
		Env:        get("SERENE_ENV", "development"),
		Addr:       get("SERENE_ADDR", ":8080"),
		SiteOrigin: strings.TrimRight(get("SERENE_SITE_ORIGIN", "http://localhost:8080"), "/"),
		Database: Database{
			Path:        get("SERENE_DB_PATH", "serene.db"),
			SlowQueryMs: getInt("SERENE_SLOW_QUERY_MS", 50),
			VisitorTTL:  time.Duration(getInt("SERENE_VISITOR_TTL_DAYS", 30)) * 24 * time.Hour,
		},
		HTTP: HTTP{
			SlowRequestMs: getInt("SERENE_SLOW_REQUEST_MS", 200),
		},
		Admin: Admin{
			Username: get("SERENE_ADMIN_USERNAME", "admin"),
			Password: get("SERENE_ADMIN_PASSWORD", "admin123"),
			Email:    get("SERENE_ADMIN_EMAIL", "admin@sereneyoga.com"),
			Phone:    get("SERENE_ADMIN_PHONE", "1234567890"),
		},
		Email: Email{
			ResendKey: get("SERENE_RESEND_KEY", ""),
			From:      get("SERENE_EMAIL_FROM", "Serene Yoga Studio <hello@sereneyoga.com>"),
			ReplyTo:   get("SERENE_REPLY_TO", "hello@sereneyoga.com"),
		},
		Schedule: Schedule{
			Weeks: getInt("SERENE_SCHEDULE_WEEKS", 52),
		},
	}

	if s := get("SERENE_SCHEDULE_START", ""); s != "" {
		start, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, ErrBadScheduleDate
		}
		cfg.Schedule.Start = start
	}

	key, err := csrfKey(get("SERENE_CSRF_KEY", ""), cfg.IsProduction())
	if err != nil {
		return nil, err
	}
	cfg.HTTP.CSRFKey = key
	return cfg, nil
}

// csrfKey decodes the configured key, or generates a random one outside production.
func csrfKey(keyHex string, production bool) ([]byte, error) {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return nil, ErrBadCSRFKey
		}
		return key, nil
	}
	if production {
		return nil, ErrMissingCSRFKey
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate CSRF key: %w", err)
	}
	slog.Warn("config_event", "event", "random_csrf_key", "detail", "forms will not survive a restart; set SERENE_CSRF_KEY")
	return key, nil
}
