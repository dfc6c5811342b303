package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"serene/internal/adapters/http/perf"
)

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	setupStores(t)
	RateLimitPerSecond = 1000

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	handler := NewMux(ctx, stores, perf.NewCollector(64), Options{
		CSRFKey:    []byte("0123456789abcdef0123456789abcdef"),
		SiteOrigin: "http://localhost:8080",
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client
}

func doJSON(t *testing.T, client *http.Client, method, target, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, target, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
		t.Fatalf("decode %s: %v", target, err)
	}
	return resp, out
}

// TestNewMux_LoginFlow drives the full middleware chain: visitor cookie, JSON login,
// session resolution and role-gated endpoints.
func TestNewMux_LoginFlow(t *testing.T) {
	srv, client := newTestServer(t)

	resp, err := client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Frame-Options") != "DENY" {
		t.Error("security headers missing")
	}

	_, sess := doJSON(t, client, "GET", srv.URL+"/api/session", "")
	if sess["loggedIn"] != false {
		t.Fatalf("session before login = %v", sess)
	}

	resp, body := doJSON(t, client, "POST", srv.URL+"/login", `{"username":"admin","password":"admin123"}`)
	if resp.StatusCode != http.StatusOK || body["message"] != "Welcome, Admin admin!" {
		t.Fatalf("login = %d %v", resp.StatusCode, body)
	}

	_, sess = doJSON(t, client, "GET", srv.URL+"/api/session", "")
	if sess["loggedIn"] != true || sess["welcome"] != "Admin" {
		t.Errorf("session after login = %v", sess)
	}

	resp, _ = doJSON(t, client, "GET", srv.URL+"/api/admin/perf", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("perf status = %d", resp.StatusCode)
	}

	resp, body = doJSON(t, client, "POST", srv.URL+"/dashboard/command", `{"command":"show-enquiries"}`)
	if resp.StatusCode != http.StatusOK || body["panel"] != "enquiries" {
		t.Errorf("command = %d %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, client, "POST", srv.URL+"/logout", `{}`)
	if resp.StatusCode != http.StatusOK || body["message"] != "Logged out successfully!" {
		t.Errorf("logout = %d %v", resp.StatusCode, body)
	}
	resp, _ = doJSON(t, client, "GET", srv.URL+"/api/admin/perf", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("perf after logout status = %d, want 401", resp.StatusCode)
	}
}

// TestNewMux_FormPostNeedsCSRFToken verifies form posts without a token are refused.
func TestNewMux_FormPostNeedsCSRFToken(t *testing.T) {
	srv, client := newTestServer(t)
	resp, err := client.PostForm(srv.URL+"/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

// TestNewMux_DashboardRequiresLogin verifies anonymous visitors are sent to the login page.
func TestNewMux_DashboardRequiresLogin(t *testing.T) {
	srv, client := newTestServer(t)
	req, _ := http.NewRequest("GET", srv.URL+"/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET /dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || !strings.HasPrefix(resp.Header.Get("Location"), "/login?next=") {
		t.Errorf("status = %d location = %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

// TestNewMux_StaticAssets verifies embedded assets are served.
func TestNewMux_StaticAssets(t *testing.T) {
	srv, client := newTestServer(t)
	for _, path := range []string{"/static/app.js", "/static/style.css"} {
		resp, err := client.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d", path, resp.StatusCode)
		}
	}
}
