package orchestrators

import (
	"context"
	"slices"

	"golang.org/x/crypto/bcrypt"

	"serene/internal/adapters/email"
	"serene/internal/domain/booking"
	"serene/internal/domain/dashboard"
	"serene/internal/domain/registration"
	"serene/internal/domain/session"
	"serene/internal/domain/subscription"
	"serene/internal/domain/theme"
	"serene/internal/domain/user"
)

func init() {
	user.HashCost = bcrypt.MinCost
}

// fakeStore implements every store interface the orchestrators use.
type fakeStore struct {
	users        []user.User
	usersWritten bool
	bookings     []booking.Booking
	regs         []registration.Registration
	subs         []subscription.Subscription
	sessions     map[string]session.Session
	panels       map[string]dashboard.Panel
	themes       map[string]theme.Preference

	usersErr   error
	sessionErr error
}

func newFakeStore(users ...user.User) *fakeStore {
	return &fakeStore{
		users:        users,
		usersWritten: len(users) > 0,
		sessions:     make(map[string]session.Session),
		panels:       make(map[string]dashboard.Panel),
		themes:       make(map[string]theme.Preference),
	}
}

// Users implements UserStore.
func (f *fakeStore) Users(_ context.Context) ([]user.User, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return slices.Clone(f.users), nil
}

// UpdateUsers implements UserStore.
func (f *fakeStore) UpdateUsers(_ context.Context, fn func([]user.User) ([]user.User, error)) error {
	if f.usersErr != nil {
		return f.usersErr
	}
	next, err := fn(slices.Clone(f.users))
	if err != nil {
		return err
	}
	f.users = next
	f.usersWritten = true
	return nil
}

// EnsureSeeded implements AdminSeeder.
func (f *fakeStore) EnsureSeeded(_ context.Context, admin user.User) (bool, error) {
	if f.usersWritten {
		return false, nil
	}
	f.users = []user.User{admin}
	f.usersWritten = true
	return true, nil
}

// Session implements SessionStore.
func (f *fakeStore) Session(_ context.Context, visitorID string) (session.Session, error) {
	if f.sessionErr != nil {
		return session.Session{}, f.sessionErr
	}
	return f.sessions[visitorID], nil
}

// PutSession implements SessionStore.
func (f *fakeStore) PutSession(_ context.Context, visitorID string, sess session.Session) error {
	if f.sessionErr != nil {
		return f.sessionErr
	}
	f.sessions[visitorID] = sess
	return nil
}

// ClearSession implements SessionStore.
func (f *fakeStore) ClearSession(_ context.Context, visitorID string) error {
	if f.sessionErr != nil {
		return f.sessionErr
	}
	f.sessions[visitorID] = session.Session{}
	return nil
}

// Panel implements PanelStore.
func (f *fakeStore) Panel(_ context.Context, visitorID string) (dashboard.Panel, error) {
	return f.panels[visitorID], nil
}

// PutPanel implements PanelStore.
func (f *fakeStore) PutPanel(_ context.Context, visitorID string, p dashboard.Panel) error {
	f.panels[visitorID] = p
	return nil
}

// UpdateBookings implements BookingStore.
func (f *fakeStore) UpdateBookings(_ context.Context, fn func([]booking.Booking) ([]booking.Booking, error)) error {
	next, err := fn(slices.Clone(f.bookings))
	if err != nil {
		return err
	}
	f.bookings = next
	return nil
}

// UpdateRegistrations implements RegistrationStore.
func (f *fakeStore) UpdateRegistrations(_ context.Context, fn func([]registration.Registration) ([]registration.Registration, error)) error {
	next, err := fn(slices.Clone(f.regs))
	if err != nil {
		return err
	}
	f.regs = next
	return nil
}

// UpdateSubscriptions implements SubscriptionStore.
func (f *fakeStore) UpdateSubscriptions(_ context.Context, fn func([]subscription.Subscription) ([]subscription.Subscription, error)) error {
	next, err := fn(slices.Clone(f.subs))
	if err != nil {
		return err
	}
	f.subs = next
	return nil
}

// Theme implements ThemeStore.
func (f *fakeStore) Theme(_ context.Context, visitorID string) (theme.Preference, error) {
	if p, ok := f.themes[visitorID]; ok {
		return p, nil
	}
	return theme.Default, nil
}

// PutTheme implements ThemeStore.
func (f *fakeStore) PutTheme(_ context.Context, visitorID string, p theme.Preference) error {
	f.themes[visitorID] = p
	return nil
}

// mockSender records outgoing mail.
type mockSender struct {
	sent []email.SendRequest
	err  error
}

// Send implements email.Sender.
func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.err != nil {
		return email.SendResult{}, m.err
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "mock"}, nil
}

// Fixtures shared by the orchestrator tests.
var (
	adminUser = user.User{Username: "admin", Password: "admin123", Role: user.RoleAdmin, Email: "admin@sereneyoga.com", Phone: "1234567890"}
	priya     = user.User{Username: "priya", Password: "om-shanti", Role: user.RoleUser, Email: "priya@example.com", Phone: "555-0101"}
	sam       = user.User{Username: "sam", Password: "sun-salute", Role: user.RoleUser}
)

const visitor = "visitor-1"
