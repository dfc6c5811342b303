package web

import (
	"io/fs"
	"net/http"

	"serene/internal/adapters/http/middleware"
)

func registerRoutes(mux *http.ServeMux) {
	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(assets))))

	// Pages
	mux.HandleFunc("GET /{$}", handleHome)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/signup", handleSignup)
	mux.HandleFunc("POST /logout", handleLogout)
	mux.HandleFunc("GET /journal/{slug}", handleJournalPost)
	mux.Handle("GET /dashboard", middleware.RequireAuth(http.HandlerFunc(handleDashboard)))
	mux.Handle("/change-password", middleware.RequireAuth(http.HandlerFunc(handleChangePassword)))

	// Form controllers
	mux.HandleFunc("POST /dashboard/command", handleDashboardCommand)
	mux.HandleFunc("POST /profile", handleUpdateProfile)
	mux.HandleFunc("POST /admin/users/delete", handleDeleteUser)
	mux.HandleFunc("POST /register", handleRegister)
	mux.HandleFunc("POST /enquiry", handleEnquiry)
	mux.HandleFunc("POST /newsletter", handleNewsletter)
	mux.HandleFunc("POST /theme", handleTheme)

	// JSON
	mux.HandleFunc("GET /api/schedule/events", handleScheduleEvents)
	mux.HandleFunc("GET /api/share", handleShare)
	mux.HandleFunc("GET /api/session", handleSessionAPI)
	mux.Handle("GET /api/admin/perf", middleware.RequireAdmin(http.HandlerFunc(handlePerf)))
}
