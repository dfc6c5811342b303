package orchestrators

import (
	"context"
	"fmt"

	"serene/internal/domain/theme"
)

// ExecuteToggleTheme flips the visitor's colour scheme and returns the new value.
// POST: an unset preference counts as light, so the first toggle yields dark
func ExecuteToggleTheme(ctx context.Context, visitorID string, store ThemeStore) (theme.Preference, error) {
	current, err := store.Theme(ctx, visitorID)
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	next := current.Toggle()
	if err := store.PutTheme(ctx, visitorID, next); err != nil {
		return "", fmt.Errorf("save theme: %w", err)
	}
	return next, nil
}
