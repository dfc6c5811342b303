package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"serene/internal/domain/user"
)

// AdminSeeder writes the first-run users collection.
type AdminSeeder interface {
	EnsureSeeded(ctx context.Context, admin user.User) (bool, error)
}

// SeedAdminInput carries the configured admin account.
type SeedAdminInput struct {
	Username string
	Password string
	Email    string
	Phone    string
}

// ExecuteSeedAdmin writes users = [admin] if the users key has never been written.
// PRE: store is migrated
// POST: an emptied users collection is left empty
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, store AdminSeeder) error {
	admin := user.User{Username: input.Username, Role: user.RoleAdmin, Email: input.Email, Phone: input.Phone}
	if err := admin.SetPassword(input.Password); err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := admin.Validate(); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	seeded, err := store.EnsureSeeded(ctx, admin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if seeded {
		slog.Info("auth_event", "event", "admin_seeded", "username", input.Username)
	}
	return nil
}
