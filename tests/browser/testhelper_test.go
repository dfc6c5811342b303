package browser_test

import (
	"context"
	"math/rand/v2"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/crypto/bcrypt"

	_ "modernc.org/sqlite"

	web "serene/internal/adapters/http"
	"serene/internal/adapters/http/perf"
	"serene/internal/adapters/storage"
	"serene/internal/adapters/storage/kv"
	"serene/internal/adapters/storage/record"
	"serene/internal/application/orchestrators"
	"serene/internal/domain/schedule"
	"serene/internal/domain/user"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	Records *record.Store
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// skipUnlessBrowser skips in -short mode and unless SERENE_BROWSER_TESTS=1.
func skipUnlessBrowser(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if os.Getenv("SERENE_BROWSER_TESTS") != "1" {
		t.Skip("set SERENE_BROWSER_TESTS=1 to run browser tests")
	}
}

// newTestApp creates a fully wired app over a temp SQLite DB and starts an HTTP server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	user.HashCost = bcrypt.MinCost
	web.RateLimitPerSecond = 1000

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	collector := perf.NewCollector(0)
	records := record.New(kv.NewSQLiteStore(storage.NewTimedDB(db, collector, 0)))

	seed := orchestrators.SeedAdminInput{Username: "admin", Password: "admin123", Email: "admin@sereneyoga.com", Phone: "1234567890"}
	if err := orchestrators.ExecuteSeedAdmin(ctx, seed, records); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	events := schedule.Generate(time.Now(), 8, rand.New(rand.NewPCG(1, 2)))
	srv := httptest.NewUnstartedServer(nil)
	baseURL := "http://" + srv.Listener.Addr().String()
	srv.Config.Handler = web.NewMux(ctx, &web.Stores{Records: records, Events: events}, collector, web.Options{
		CSRFKey:    []byte("0123456789abcdef0123456789abcdef"),
		SiteOrigin: baseURL,
	})
	srv.Start()
	t.Cleanup(srv.Close)

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		t.Fatalf("failed to launch browser: %v", err)
	}
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
	})

	return &testApp{BaseURL: baseURL, Records: records, PW: pw, Browser: browser}
}

// newPage creates a new browser page in its own context, so each page is a separate visitor.
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	bctx, err := a.Browser.NewContext()
	if err != nil {
		t.Fatalf("failed to create browser context: %v", err)
	}
	t.Cleanup(func() { bctx.Close() })
	page, err := bctx.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	return page
}

// login submits the login form and waits for the redirect home.
func (a *testApp) login(t *testing.T, page playwright.Page, username, password string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("#login-form input[name=username]").Fill(username); err != nil {
		t.Fatalf("failed to fill username: %v", err)
	}
	if err := page.Locator("#login-form input[name=password]").Fill(password); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("#login-form button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect home: %v", err)
	}
}

// expectToast waits for the toast to be shown and checks its text.
func expectToast(t *testing.T, page playwright.Page, want string) {
	t.Helper()
	toast := page.Locator("#toast.show")
	if err := toast.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(5000),
	}); err != nil {
		t.Fatalf("toast not shown (want %q): %v", want, err)
	}
	got, err := toast.TextContent()
	if err != nil {
		t.Fatalf("read toast: %v", err)
	}
	if got != want {
		t.Errorf("toast = %q, want %q", got, want)
	}
}
