package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"serene/internal/domain/dashboard"
	"serene/internal/domain/session"
	"serene/internal/domain/user"
)

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	VisitorID string
	Username  string
	Password  string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Users    UserStore
	Sessions SessionStore
	Panels   PanelStore
}

// ExecuteLogin authenticates the visitor against the users collection.
// PRE: VisitorID is non-empty
// POST: on success the visitor's session is Authenticated(user) with a closed dashboard;
// on ErrInvalidCredentials the stored session is untouched
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (session.Session, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || password == "" {
		return session.Session{}, ErrInvalidCredentials
	}

	users, err := deps.Users.Users(ctx)
	if err != nil {
		return session.Session{}, fmt.Errorf("load users: %w", err)
	}
	u, ok := user.Authenticate(users, username, password)
	if !ok {
		slog.Info("auth_event", "event", "login_failed", "username", username)
		return session.Session{}, ErrInvalidCredentials
	}

	if !u.HasHashedPassword() {
		upgradePassword(ctx, deps.Users, username, password)
	}

	sess := session.For(sessionCopy(u))
	if err := deps.Sessions.PutSession(ctx, input.VisitorID, sess); err != nil {
		return session.Session{}, fmt.Errorf("save session: %w", err)
	}
	if err := deps.Panels.PutPanel(ctx, input.VisitorID, dashboard.PanelNone); err != nil {
		slog.Warn("auth_event", "event", "panel_reset_failed", "error", err)
	}

	slog.Info("auth_event", "event", "login_success", "username", username, "role", u.Role)
	return sess, nil
}

// WelcomeMessage is the toast shown after login, e.g. "Welcome, Admin admin!".
func WelcomeMessage(sess session.Session) string {
	label := "User"
	if sess.IsAdmin() {
		label = "Admin"
	}
	return fmt.Sprintf("Welcome, %s %s!", label, sess.Username())
}

// upgradePassword replaces a legacy plaintext password with a bcrypt hash.
// Failure is logged and does not block login.
func upgradePassword(ctx context.Context, store UserStore, username, password string) {
	err := store.UpdateUsers(ctx, func(users []user.User) ([]user.User, error) {
		i := user.Find(users, username)
		if i < 0 || users[i].HasHashedPassword() {
			return users, nil
		}
		if err := users[i].SetPassword(password); err != nil {
			return nil, err
		}
		return users, nil
	})
	if err != nil {
		slog.Warn("auth_event", "event", "password_upgrade_failed", "username", username, "error", err)
		return
	}
	slog.Info("auth_event", "event", "password_upgraded", "username", username)
}

// sessionCopy is the user record as kept in a visitor's session; the password never leaves users.
func sessionCopy(u user.User) user.User {
	u.Password = ""
	return u
}
