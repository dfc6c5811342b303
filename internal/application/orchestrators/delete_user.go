package orchestrators

import (
	"context"
	"log/slog"
	"slices"

	"serene/internal/domain/session"
	"serene/internal/domain/user"
)

// DeleteUserInput carries input for the delete-user orchestrator.
type DeleteUserInput struct {
	Session  session.Session
	Username string
}

// DeleteUserDeps holds dependencies for DeleteUser.
type DeleteUserDeps struct {
	Users UserStore
}

// ExecuteDeleteUser removes one non-admin user by exact username.
// PRE: Session belongs to an admin
// POST: exactly that record is removed; bookings and registrations are left in place
// INVARIANT: records with role admin are never removed
func ExecuteDeleteUser(ctx context.Context, input DeleteUserInput, deps DeleteUserDeps) error {
	if !input.Session.IsAdmin() {
		return ErrForbidden
	}
	err := deps.Users.UpdateUsers(ctx, func(users []user.User) ([]user.User, error) {
		i := user.Find(users, input.Username)
		if i < 0 {
			return nil, ErrUserNotFound
		}
		if users[i].IsAdmin() {
			return nil, ErrCannotDeleteAdmin
		}
		return slices.Delete(users, i, i+1), nil
	})
	if err != nil {
		return err
	}
	slog.Info("admin_event", "event", "user_deleted", "username", input.Username, "by", input.Session.Username())
	return nil
}
