package orchestrators

import (
	"context"

	"serene/internal/domain/booking"
	"serene/internal/domain/dashboard"
	"serene/internal/domain/registration"
	"serene/internal/domain/session"
	"serene/internal/domain/subscription"
	"serene/internal/domain/theme"
	"serene/internal/domain/user"
)

// UserStore reads and rewrites the users collection.
type UserStore interface {
	Users(ctx context.Context) ([]user.User, error)
	UpdateUsers(ctx context.Context, fn func([]user.User) ([]user.User, error)) error
}

// SessionStore persists the per-visitor session flags.
type SessionStore interface {
	Session(ctx context.Context, visitorID string) (session.Session, error)
	PutSession(ctx context.Context, visitorID string, sess session.Session) error
	ClearSession(ctx context.Context, visitorID string) error
}

// PanelStore persists the visitor's active dashboard panel.
type PanelStore interface {
	Panel(ctx context.Context, visitorID string) (dashboard.Panel, error)
	PutPanel(ctx context.Context, visitorID string, p dashboard.Panel) error
}

// BookingStore appends to the bookings (enquiries) collection.
type BookingStore interface {
	UpdateBookings(ctx context.Context, fn func([]booking.Booking) ([]booking.Booking, error)) error
}

// RegistrationStore appends to the registrations collection.
type RegistrationStore interface {
	UpdateRegistrations(ctx context.Context, fn func([]registration.Registration) ([]registration.Registration, error)) error
}

// SubscriptionStore appends to the subscriptions collection.
type SubscriptionStore interface {
	UpdateSubscriptions(ctx context.Context, fn func([]subscription.Subscription) ([]subscription.Subscription, error)) error
}

// ThemeStore persists the visitor's colour scheme.
type ThemeStore interface {
	Theme(ctx context.Context, visitorID string) (theme.Preference, error)
	PutTheme(ctx context.Context, visitorID string, p theme.Preference) error
}
