package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"serene/internal/domain/session"
	"serene/internal/domain/user"
)

// ResolveSessionDeps holds dependencies for ResolveSession.
type ResolveSessionDeps struct {
	Users    UserStore
	Sessions SessionStore
}

// ExecuteResolveSession rebuilds the visitor's session from the store.
// A session whose user is missing, malformed or deleted is logged out.
// PRE: none
// POST: returns Anonymous, or Authenticated with the current users record (password stripped)
func ExecuteResolveSession(ctx context.Context, visitorID string, deps ResolveSessionDeps) (session.Session, error) {
	if visitorID == "" {
		return session.Anon(), nil
	}
	stored, err := deps.Sessions.Session(ctx, visitorID)
	if err != nil {
		return session.Session{}, fmt.Errorf("load session: %w", err)
	}
	if !stored.IsLoggedIn {
		return session.Anon(), nil
	}
	if stored.CurrentUser == nil {
		return forceLogout(ctx, visitorID, "", "malformed", deps.Sessions)
	}

	users, err := deps.Users.Users(ctx)
	if err != nil {
		return session.Session{}, fmt.Errorf("load users: %w", err)
	}
	i := user.Find(users, stored.CurrentUser.Username)
	if i < 0 {
		return forceLogout(ctx, visitorID, stored.CurrentUser.Username, "deleted", deps.Sessions)
	}
	return session.For(sessionCopy(users[i])), nil
}

func forceLogout(ctx context.Context, visitorID, username, reason string, sessions SessionStore) (session.Session, error) {
	slog.Info("auth_event", "event", "stale_session", "username", username, "reason", reason)
	if err := sessions.ClearSession(ctx, visitorID); err != nil {
		return session.Session{}, fmt.Errorf("clear stale session: %w", err)
	}
	return session.Anon(), nil
}
