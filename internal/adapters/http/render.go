package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"serene/internal/adapters/http/middleware"
	"serene/internal/domain/dashboard"
	"serene/internal/domain/share"
	"serene/internal/domain/theme"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var panelLabels = map[dashboard.Panel]string{
	dashboard.PanelAnalytics:     "Analytics",
	dashboard.PanelUsers:         "Manage Users",
	dashboard.PanelRegistrations: "Registrations",
	dashboard.PanelSubscriptions: "Subscriptions",
	dashboard.PanelEnquiries:     "Enquiries",
	dashboard.PanelProfile:       "My Profile",
	dashboard.PanelBookings:      "My Bookings",
}

// panelCommands is the command each dashboard menu button submits.
var panelCommands = map[dashboard.Panel]dashboard.Command{
	dashboard.PanelAnalytics:     dashboard.CmdShowAnalytics,
	dashboard.PanelUsers:         dashboard.CmdManageUsers,
	dashboard.PanelRegistrations: dashboard.CmdShowRegistrations,
	dashboard.PanelSubscriptions: dashboard.CmdShowSubscriptions,
	dashboard.PanelEnquiries:     dashboard.CmdShowEnquiries,
	dashboard.PanelProfile:       dashboard.CmdShowProfile,
	dashboard.PanelBookings:      dashboard.CmdShowBookings,
}

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// renderTemplate executes layout.html around templateName with a per-request FuncMap.
// Any pending flash is consumed here.
func renderTemplate(w http.ResponseWriter, r *http.Request, status int, templateName string, data any) {
	ctx := r.Context()
	sess := middleware.SessionFrom(ctx)
	visitorID := middleware.VisitorID(ctx)

	pref := theme.Default
	if visitorID != "" {
		p, err := stores.Records.Theme(ctx, visitorID)
		if err != nil {
			internalError(w, err)
			return
		}
		pref = p
	}
	toast := popFlash(w, r)

	funcMap := template.FuncMap{
		"csrfField":      func() template.HTML { return csrf.TemplateField(r) },
		"isLoggedIn":     func() bool { return sess.IsLoggedIn },
		"isAdmin":        sess.IsAdmin,
		"welcomeName":    sess.WelcomeName,
		"currentUser":    sess.Username,
		"theme":          func() string { return string(pref) },
		"themeIcon":      pref.Icon,
		"flash":          func() *Flash { return toast },
		"renderMarkdown": renderMarkdown,
		"panelLabel":     func(p dashboard.Panel) string { return panelLabels[p] },
		"panelCommand":   func(p dashboard.Panel) string { return string(panelCommands[p]) },
		"itemLink": func(kind, title string) string {
			return share.ItemLink(siteOrigin, share.ParseKind(kind), title)
		},
		"shareURL": func(kind, title, platform string) string {
			u, err := share.URL(siteOrigin, share.ParseKind(kind), title, share.Platform(platform))
			if err != nil {
				return ""
			}
			return u
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"pageQuery": func(page, perPage int, search string) template.URL {
			q := url.Values{}
			q.Set("page", fmt.Sprintf("%d", page))
			q.Set("per_page", fmt.Sprintf("%d", perPage))
			if search != "" {
				q.Set("q", search)
			}
			return template.URL(q.Encode())
		},
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templatesFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		internalError(w, fmt.Errorf("parse %s: %w", templateName, err))
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, fmt.Errorf("render %s: %w", templateName, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("render_write_failed", "template", templateName, "error", err)
	}
}
