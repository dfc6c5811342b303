package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"serene/internal/domain/user"
)

// SignupInput carries input for the signup orchestrator.
type SignupInput struct {
	Username string
	Password string
}

// SignupDeps holds dependencies for Signup.
type SignupDeps struct {
	Users UserStore
}

// ExecuteSignup appends a standard user with empty contact fields. It never logs the visitor in.
// PRE: none
// POST: users grows by exactly one record with role "user", or is unchanged on error
// INVARIANT: usernames stay unique (exact, case-sensitive match)
func ExecuteSignup(ctx context.Context, input SignupInput, deps SignupDeps) error {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" {
		return user.ErrEmptyUsername
	}
	if password == "" {
		return user.ErrEmptyPassword
	}

	err := deps.Users.UpdateUsers(ctx, func(users []user.User) ([]user.User, error) {
		if user.Find(users, username) >= 0 {
			return nil, ErrUsernameTaken
		}
		u := user.User{Username: username, Role: user.RoleUser}
		if err := u.SetPassword(password); err != nil {
			return nil, err
		}
		return append(users, u), nil
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			slog.Info("auth_event", "event", "signup_rejected", "username", username, "reason", "taken")
		}
		return err
	}

	slog.Info("auth_event", "event", "account_created", "username", username, "role", user.RoleUser)
	return nil
}
