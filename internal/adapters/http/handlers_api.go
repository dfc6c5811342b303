package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"serene/internal/adapters/http/middleware"
	"serene/internal/application/projections"
	"serene/internal/domain/share"
)

// defaultPerfWindow is how far back /api/admin/perf looks without ?window=.
const defaultPerfWindow = 15 * time.Minute

// handleScheduleEvents handles GET /api/schedule/events?class= for the calendar widget.
func handleScheduleEvents(w http.ResponseWriter, r *http.Request) {
	result := projections.QueryGetSchedule(
		projections.GetScheduleQuery{Class: r.URL.Query().Get("class")},
		projections.GetScheduleDeps{Events: stores.Events},
	)
	writeJSON(w, http.StatusOK, result.Events)
}

type shareResponse struct {
	Link    string `json:"link"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// handleShare handles GET /api/share?kind=class|blog&title=&platform=
// Without a platform only the copy link is returned.
func handleShare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	title := strings.TrimSpace(q.Get("title"))
	if title == "" {
		writeJSON(w, http.StatusBadRequest, toastResponse{Error: share.ErrEmptyTitle.Error()})
		return
	}
	kind := share.ParseKind(q.Get("kind"))
	resp := shareResponse{Link: share.ItemLink(siteOrigin, kind, title)}

	platform := q.Get("platform")
	if platform == "" {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	u, err := share.URL(siteOrigin, kind, title, share.Platform(platform))
	switch {
	case errors.Is(err, share.ErrManualShare):
		resp.Message = share.ManualShareMessage
	case err != nil:
		writeJSON(w, http.StatusBadRequest, toastResponse{Error: err.Error()})
		return
	default:
		resp.URL = u
	}
	writeJSON(w, http.StatusOK, resp)
}

type sessionResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Welcome  string `json:"welcome,omitempty"`
	Theme    string `json:"theme"`
}

// handleSessionAPI handles GET /api/session
func handleSessionAPI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFrom(ctx)
	pref, err := stores.Records.Theme(ctx, middleware.VisitorID(ctx))
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		LoggedIn: sess.IsLoggedIn,
		Username: sess.Username(),
		Role:     sess.Role(),
		Welcome:  sess.WelcomeName(),
		Theme:    string(pref),
	})
}

// handlePerf handles GET /api/admin/perf?window=15m
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}
	window := defaultPerfWindow
	if v := r.URL.Query().Get("window"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			writeJSON(w, http.StatusBadRequest, toastResponse{Error: "window must be a positive duration such as 15m"})
			return
		}
		window = d
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(timeNow().Add(-window), 10))
}
