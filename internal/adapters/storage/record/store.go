// Package record is the single typed read/write path over the key/value store.
// Collections are stored whole as JSON arrays; every mutation rewrites the
// collection it changes.
package record

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"serene/internal/adapters/storage/kv"
	"serene/internal/domain/booking"
	"serene/internal/domain/dashboard"
	"serene/internal/domain/registration"
	"serene/internal/domain/session"
	"serene/internal/domain/subscription"
	"serene/internal/domain/theme"
	"serene/internal/domain/user"
)

// Keys of the shared collections.
const (
	KeyUsers         = "users"
	KeyBookings      = "bookings"
	KeyRegistrations = "registrations"
	KeySubscriptions = "subscriptions"
)

// Keys held in each visitor namespace.
const (
	KeyIsLoggedIn  = "isLoggedIn"
	KeyCurrentUser = "currentUser"
	KeyTheme       = "theme"
	KeyPanel       = "panel"
)

// VisitorNamespace returns the namespace for one visitor's browser.
func VisitorNamespace(visitorID string) string {
	return "visitor/" + visitorID
}

// Store reads and writes typed records.
// INVARIANT: read-modify-write cycles on one collection never interleave within a process.
type Store struct {
	kv kv.Store

	usersMu         sync.Mutex
	bookingsMu      sync.Mutex
	registrationsMu sync.Mutex
	subscriptionsMu sync.Mutex
}

// New wraps a key/value store.
func New(s kv.Store) *Store {
	return &Store{kv: s}
}

// decode unmarshals a stored value. Absent and malformed values report false;
// malformed values are logged and otherwise treated as absent.
func decode[T any](ctx context.Context, s kv.Store, ns, key string, out *T) (bool, error) {
	raw, ok, err := s.Get(ctx, ns, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		slog.WarnContext(ctx, "record_malformed", "namespace", ns, "key", key, "error", err)
		var zero T
		*out = zero
		return false, nil
	}
	return true, nil
}

func encode(ctx context.Context, s kv.Store, ns, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, ns, key, raw)
}

func readList[T any](ctx context.Context, s kv.Store, key string) ([]T, error) {
	var items []T
	if _, err := decode(ctx, s, kv.AppNamespace, key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func writeList[T any](ctx context.Context, s kv.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return encode(ctx, s, kv.AppNamespace, key, items)
}

// updateList runs read -> fn -> write under mu. Nothing is written if fn fails.
func updateList[T any](ctx context.Context, s kv.Store, mu *sync.Mutex, key string, fn func([]T) ([]T, error)) error {
	mu.Lock()
	defer mu.Unlock()
	items, err := readList[T](ctx, s, key)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return writeList(ctx, s, key, next)
}

// Users returns the users collection; absent or malformed reads as empty.
func (s *Store) Users(ctx context.Context) ([]user.User, error) {
	return readList[user.User](ctx, s.kv, KeyUsers)
}

// PutUsers replaces the users collection.
func (s *Store) PutUsers(ctx context.Context, users []user.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	return writeList(ctx, s.kv, KeyUsers, users)
}

// UpdateUsers applies fn to the users collection atomically within the process.
func (s *Store) UpdateUsers(ctx context.Context, fn func([]user.User) ([]user.User, error)) error {
	return updateList(ctx, s.kv, &s.usersMu, KeyUsers, fn)
}

// EnsureSeeded writes users = [admin] only if the users key has never been written.
// POST: returns true when the seed was written
func (s *Store) EnsureSeeded(ctx context.Context, admin user.User) (bool, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	_, ok, err := s.kv.Get(ctx, kv.AppNamespace, KeyUsers)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if err := writeList(ctx, s.kv, KeyUsers, []user.User{admin}); err != nil {
		return false, err
	}
	return true, nil
}

// Bookings returns the bookings (enquiries) collection.
func (s *Store) Bookings(ctx context.Context) ([]booking.Booking, error) {
	return readList[booking.Booking](ctx, s.kv, KeyBookings)
}

// PutBookings replaces the bookings collection.
func (s *Store) PutBookings(ctx context.Context, bookings []booking.Booking) error {
	s.bookingsMu.Lock()
	defer s.bookingsMu.Unlock()
	return writeList(ctx, s.kv, KeyBookings, bookings)
}

// UpdateBookings applies fn to the bookings collection.
func (s *Store) UpdateBookings(ctx context.Context, fn func([]booking.Booking) ([]booking.Booking, error)) error {
	return updateList(ctx, s.kv, &s.bookingsMu, KeyBookings, fn)
}

// Registrations returns the registrations collection.
func (s *Store) Registrations(ctx context.Context) ([]registration.Registration, error) {
	return readList[registration.Registration](ctx, s.kv, KeyRegistrations)
}

// PutRegistrations replaces the registrations collection.
func (s *Store) PutRegistrations(ctx context.Context, regs []registration.Registration) error {
	s.registrationsMu.Lock()
	defer s.registrationsMu.Unlock()
	return writeList(ctx, s.kv, KeyRegistrations, regs)
}

// UpdateRegistrations applies fn to the registrations collection.
func (s *Store) UpdateRegistrations(ctx context.Context, fn func([]registration.Registration) ([]registration.Registration, error)) error {
	return updateList(ctx, s.kv, &s.registrationsMu, KeyRegistrations, fn)
}

// Subscriptions returns the newsletter subscriptions collection.
func (s *Store) Subscriptions(ctx context.Context) ([]subscription.Subscription, error) {
	return readList[subscription.Subscription](ctx, s.kv, KeySubscriptions)
}

// PutSubscriptions replaces the subscriptions collection.
func (s *Store) PutSubscriptions(ctx context.Context, subs []subscription.Subscription) error {
	s.subscriptionsMu.Lock()
	defer s.subscriptionsMu.Unlock()
	return writeList(ctx, s.kv, KeySubscriptions, subs)
}

// UpdateSubscriptions applies fn to the subscriptions collection.
func (s *Store) UpdateSubscriptions(ctx context.Context, fn func([]subscription.Subscription) ([]subscription.Subscription, error)) error {
	return updateList(ctx, s.kv, &s.subscriptionsMu, KeySubscriptions, fn)
}

// Session returns the stored session flags for a visitor as-is.
// A flag without a decodable user yields a session whose State is Anonymous.
func (s *Store) Session(ctx context.Context, visitorID string) (session.Session, error) {
	ns := VisitorNamespace(visitorID)
	var sess session.Session
	if _, err := decode(ctx, s.kv, ns, KeyIsLoggedIn, &sess.IsLoggedIn); err != nil {
		return session.Session{}, err
	}
	var u user.User
	ok, err := decode(ctx, s.kv, ns, KeyCurrentUser, &u)
	if err != nil {
		return session.Session{}, err
	}
	if ok && u.Username != "" {
		sess.CurrentUser = &u
	}
	return sess, nil
}

// PutSession persists an authenticated session for a visitor.
// PRE: sess.CurrentUser != nil
func (s *Store) PutSession(ctx context.Context, visitorID string, sess session.Session) error {
	if sess.CurrentUser == nil {
		return s.ClearSession(ctx, visitorID)
	}
	ns := VisitorNamespace(visitorID)
	if err := encode(ctx, s.kv, ns, KeyCurrentUser, sess.CurrentUser); err != nil {
		return err
	}
	return encode(ctx, s.kv, ns, KeyIsLoggedIn, true)
}

// ClearSession sets isLoggedIn to false and removes currentUser.
// POST: no shared collection is touched
func (s *Store) ClearSession(ctx context.Context, visitorID string) error {
	ns := VisitorNamespace(visitorID)
	if err := encode(ctx, s.kv, ns, KeyIsLoggedIn, false); err != nil {
		return err
	}
	return s.kv.Delete(ctx, ns, KeyCurrentUser)
}

// Theme returns the visitor's preference, theme.Default when unset or unreadable.
func (s *Store) Theme(ctx context.Context, visitorID string) (theme.Preference, error) {
	var raw string
	ok, err := decode(ctx, s.kv, VisitorNamespace(visitorID), KeyTheme, &raw)
	if err != nil || !ok {
		return theme.Default, err
	}
	p, err := theme.Parse(raw)
	if err != nil {
		return theme.Default, nil
	}
	return p, nil
}

// PutTheme stores the visitor's preference.
func (s *Store) PutTheme(ctx context.Context, visitorID string, p theme.Preference) error {
	return encode(ctx, s.kv, VisitorNamespace(visitorID), KeyTheme, string(p))
}

// Panel returns the visitor's last active dashboard panel, PanelNone when unset.
func (s *Store) Panel(ctx context.Context, visitorID string) (dashboard.Panel, error) {
	var raw string
	if _, err := decode(ctx, s.kv, VisitorNamespace(visitorID), KeyPanel, &raw); err != nil {
		return dashboard.PanelNone, err
	}
	return dashboard.Panel(raw), nil
}

// PutPanel stores the active panel; PanelNone removes the key.
func (s *Store) PutPanel(ctx context.Context, visitorID string, p dashboard.Panel) error {
	ns := VisitorNamespace(visitorID)
	if p == dashboard.PanelNone {
		return s.kv.Delete(ctx, ns, KeyPanel)
	}
	return encode(ctx, s.kv, ns, KeyPanel, string(p))
}

// PruneVisitors drops visitor keys idle for longer than idle.
func (s *Store) PruneVisitors(ctx context.Context, idle time.Duration) (int64, error) {
	return s.kv.Prune(ctx, time.Now().Add(-idle))
}
