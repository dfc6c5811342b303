package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"serene/internal/domain/session"
	"serene/internal/domain/user"
)

// ChangePasswordInput carries input for the change-password orchestrator.
type ChangePasswordInput struct {
	Session         session.Session
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordDeps holds dependencies for ChangePassword.
type ChangePasswordDeps struct {
	Users UserStore
}

// ExecuteChangePassword verifies the current password and stores a hash of the new one.
// PRE: Session is Authenticated, both passwords are non-blank
// POST: only Password of the session user's record changes
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps ChangePasswordDeps) error {
	if input.Session.State() != session.Authenticated {
		return ErrNotAuthenticated
	}
	current := strings.TrimSpace(input.CurrentPassword)
	next := strings.TrimSpace(input.NewPassword)
	if current == "" || next == "" {
		return user.ErrEmptyPassword
	}
	if current == next {
		return ErrNewPasswordSame
	}

	username := input.Session.Username()
	err := deps.Users.UpdateUsers(ctx, func(users []user.User) ([]user.User, error) {
		i := user.Find(users, username)
		if i < 0 {
			return nil, ErrUserNotFound
		}
		if err := users[i].CheckPassword(current); err != nil {
			return nil, ErrCurrentPasswordWrong
		}
		if err := users[i].SetPassword(next); err != nil {
			return nil, err
		}
		return users, nil
	})
	if errors.Is(err, ErrCurrentPasswordWrong) {
		slog.Info("auth_event", "event", "password_change_failed", "username", username, "reason", "wrong_password")
	}
	if err != nil {
		return err
	}
	slog.Info("auth_event", "event", "password_changed", "username", username)
	return nil
}
