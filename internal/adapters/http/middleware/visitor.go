package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"serene/internal/domain/session"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const (
	visitorContextKey contextKey = "visitor"
	sessionContextKey contextKey = "session"
)

// VisitorCookieName scopes per-browser records the way localStorage scopes them to one origin.
const VisitorCookieName = "serene_visitor"

// visitorMaxAge keeps the visitor id for a year; idle namespaces are pruned server-side.
const visitorMaxAge = 365 * 24 * time.Hour

// SecureCookies marks cookies Secure. Set from config in production.
var SecureCookies = false

// SessionResolver rebuilds the session stored for a visitor.
type SessionResolver func(ctx context.Context, visitorID string) (session.Session, error)

// Visitor returns middleware that assigns every browser a stable visitor id and puts the
// resolved session in the request context. It never blocks anonymous requests.
func Visitor(resolve SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := visitorFromCookie(r)
			if id == "" {
				id = uuid.NewString()
				setVisitorCookie(w, id)
			}

			sess, err := resolve(r.Context(), id)
			if err != nil {
				slog.Error("session_resolve_failed", "visitor", id, "error", err)
				sess = session.Anon()
			}
			next.ServeHTTP(w, r.WithContext(ContextWithVisitor(r.Context(), id, sess)))
		})
	}
}

func visitorFromCookie(r *http.Request) string {
	c, err := r.Cookie(VisitorCookieName)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return ""
	}
	return id.String()
}

func setVisitorCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookieName,
		Value:    id,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(visitorMaxAge.Seconds()),
	})
}

// RequireAuth returns middleware that blocks anonymous visitors.
// HTML requests are sent to the login page; everything else gets 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFrom(r.Context()).State() != session.Authenticated {
			deny(w, r, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns middleware that blocks everyone but admins.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r.Context())
		if sess.State() != session.Authenticated {
			deny(w, r, http.StatusUnauthorized)
			return
		}
		if !sess.IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func deny(w http.ResponseWriter, r *http.Request, status int) {
	if r.Method == http.MethodGet && acceptsHTML(r) {
		http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
		return
	}
	http.Error(w, http.StatusText(status), status)
}

func acceptsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return accept == "" || containsAny(accept, "text/html", "application/xhtml+xml")
}

// VisitorID returns the visitor id set by Visitor, or "".
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorContextKey).(string)
	return id
}

// SessionFrom returns the session set by Visitor, or the anonymous session.
func SessionFrom(ctx context.Context) session.Session {
	sess, ok := ctx.Value(sessionContextKey).(session.Session)
	if !ok {
		return session.Anon()
	}
	return sess
}

// ContextWithVisitor returns a context carrying the visitor id and session.
// Handlers that change the session mid-request use it too.
func ContextWithVisitor(ctx context.Context, visitorID string, sess session.Session) context.Context {
	ctx = context.WithValue(ctx, visitorContextKey, visitorID)
	return context.WithValue(ctx, sessionContextKey, sess)
}
