package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"serene/internal/domain/session"
	"serene/internal/domain/user"
)

// UpdateProfileInput carries input for the profile orchestrator.
type UpdateProfileInput struct {
	VisitorID string
	Session   session.Session
	Email     string
	Phone     string
}

// UpdateProfileDeps holds dependencies for UpdateProfile.
type UpdateProfileDeps struct {
	Users    UserStore
	Sessions SessionStore
}

// ExecuteUpdateProfile changes the email and phone of the session user.
// PRE: Session is Authenticated
// POST: only Email and Phone of the matching record change; the visitor's session copy is refreshed
// INVARIANT: Username, Password and Role are never modified
func ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput, deps UpdateProfileDeps) (session.Session, error) {
	if input.Session.State() != session.Authenticated {
		return session.Session{}, ErrNotAuthenticated
	}
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)
	if email == "" {
		return session.Session{}, user.ErrEmptyEmail
	}
	if phone == "" {
		return session.Session{}, user.ErrEmptyPhone
	}

	username := input.Session.Username()
	var updated user.User
	err := deps.Users.UpdateUsers(ctx, func(users []user.User) ([]user.User, error) {
		i := user.Find(users, username)
		if i < 0 {
			return nil, ErrUserNotFound
		}
		users[i] = users[i].WithContact(email, phone)
		updated = users[i]
		return users, nil
	})
	if errors.Is(err, ErrUserNotFound) {
		if _, err := forceLogout(ctx, input.VisitorID, username, "deleted", deps.Sessions); err != nil {
			return session.Session{}, err
		}
		return session.Session{}, ErrNotAuthenticated
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("update profile: %w", err)
	}

	sess := session.For(sessionCopy(updated))
	if err := deps.Sessions.PutSession(ctx, input.VisitorID, sess); err != nil {
		return session.Session{}, fmt.Errorf("refresh session: %w", err)
	}
	slog.Info("profile_event", "event", "profile_updated", "username", username)
	return sess, nil
}
