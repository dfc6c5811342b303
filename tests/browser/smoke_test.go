package browser_test

import (
	"context"
	"testing"

	"github.com/playwright-community/playwright-go"

	"serene/internal/application/orchestrators"
)

// TestSmoke_SignupLoginNewsletter walks a new member from signup to a newsletter subscription.
func TestSmoke_SignupLoginNewsletter(t *testing.T) {
	skipUnlessBrowser(t)

	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/signup"); err != nil {
		t.Fatalf("failed to navigate to signup: %v", err)
	}
	page.Locator("#signup-form input[name=username]").Fill("meera")
	page.Locator("#signup-form input[name=password]").Fill("lotus")
	if err := page.Locator("#signup-form button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit signup: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/login", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("signup did not redirect to login: %v", err)
	}
	expectToast(t, page, orchestrators.MsgSignupSuccess)

	app.login(t, page, "meera", "lotus")
	expectToast(t, page, "Welcome, User meera!")

	if err := page.Locator("#newsletter-form input[name=email]").Fill("meera@example.com"); err != nil {
		t.Fatalf("failed to fill newsletter email: %v", err)
	}
	if err := page.Locator("#newsletter-form button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}
	expectToast(t, page, orchestrators.MsgSubscribeSuccess)

	subs, err := app.Records.Subscriptions(context.Background())
	if err != nil {
		t.Fatalf("read subscriptions: %v", err)
	}
	if len(subs) != 1 || subs[0].Username != "meera" || subs[0].Email != "meera@example.com" {
		t.Errorf("subscriptions = %+v", subs)
	}
}

// TestSmoke_AdminDashboardPanels verifies the admin menu opens one panel at a time.
func TestSmoke_AdminDashboardPanels(t *testing.T) {
	skipUnlessBrowser(t)

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page, "admin", "admin123")
	expectToast(t, page, "Welcome, Admin admin!")

	if _, err := page.Goto(app.BaseURL + "/dashboard"); err != nil {
		t.Fatalf("failed to navigate to dashboard: %v", err)
	}
	if err := page.Locator("#panel-analytics").Click(); err != nil {
		t.Fatalf("failed to open analytics: %v", err)
	}
	if err := page.Locator("#analytics-panel").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(5000),
	}); err != nil {
		t.Fatalf("analytics panel not shown: %v", err)
	}

	if err := page.Locator("#panel-users").Click(); err != nil {
		t.Fatalf("failed to open users: %v", err)
	}
	if err := page.Locator("#users-panel").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(5000),
	}); err != nil {
		t.Fatalf("users panel not shown: %v", err)
	}
	if n, _ := page.Locator("#analytics-panel").Count(); n != 0 {
		t.Error("analytics panel still rendered after switching to users")
	}

	// The active panel survives a reload.
	if _, err := page.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n, _ := page.Locator("#users-panel").Count(); n != 1 {
		t.Error("users panel not restored after reload")
	}
}

// TestSmoke_ThemeToggle verifies the theme flips without a reload and persists.
func TestSmoke_ThemeToggle(t *testing.T) {
	skipUnlessBrowser(t)

	app := newTestApp(t)
	page := app.newPage(t)
	if _, err := page.Goto(app.BaseURL + "/"); err != nil {
		t.Fatalf("failed to navigate home: %v", err)
	}
	if err := page.Locator("#theme-toggle").Click(); err != nil {
		t.Fatalf("failed to toggle theme: %v", err)
	}
	if err := page.Locator("body.dark-mode").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(5000),
	}); err != nil {
		t.Fatalf("dark mode not applied: %v", err)
	}

	if _, err := page.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n, _ := page.Locator("body.dark-mode").Count(); n != 1 {
		t.Error("dark mode not persisted across reload")
	}
}
