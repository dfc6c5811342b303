package projections

import (
	"context"
	"fmt"

	"serene/internal/application/listutil"
	"serene/internal/domain/booking"
	"serene/internal/domain/dashboard"
	"serene/internal/domain/registration"
	"serene/internal/domain/session"
	"serene/internal/domain/subscription"
	"serene/internal/domain/user"
)

// NoBookingsMessage is shown in a user's bookings panel when they have none.
const NoBookingsMessage = "No bookings yet."

// DashboardStore defines the collection reads needed by the dashboard projection.
type DashboardStore interface {
	Users(ctx context.Context) ([]user.User, error)
	Bookings(ctx context.Context) ([]booking.Booking, error)
	Registrations(ctx context.Context) ([]registration.Registration, error)
	Subscriptions(ctx context.Context) ([]subscription.Subscription, error)
}

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	Session  session.Session
	Panel    dashboard.Panel // persisted panel; invalid values fall back to none
	UserList listutil.Params
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	Store DashboardStore
}

// Analytics is the admin analytics panel.
type Analytics struct {
	TotalUsers         int
	TotalBookings      int
	TotalRegistrations int
	TotalSubscriptions int
	MostPopularClass   string
}

// UserRow is one row of the admin user-management table.
type UserRow struct {
	Username  string
	Role      string
	Email     string
	Phone     string
	Deletable bool
}

// DashboardResult is the view description for one role's dashboard.
type DashboardResult struct {
	Role        string
	WelcomeName string
	View        dashboard.View
	Panels      []dashboard.Panel

	// Admin
	Analytics     Analytics
	Users         listutil.Page[UserRow]
	UserSearch    string
	Registrations []registration.Registration
	Subscriptions []subscription.Subscription
	Enquiries     []booking.Booking

	// User
	Profile  user.User
	Bookings []booking.Booking
}

// IsAdmin reports whether this is the admin variant.
func (r DashboardResult) IsAdmin() bool {
	return r.Role == user.RoleAdmin
}

// QueryGetDashboard builds the dashboard for the session's role.
// PRE: Session is Authenticated
// POST: exactly one of the admin or user sections is populated
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (DashboardResult, error) {
	if query.Session.State() != session.Authenticated {
		return DashboardResult{}, ErrNotAuthenticated
	}
	role := query.Session.Role()
	result := DashboardResult{
		Role:        role,
		WelcomeName: query.Session.WelcomeName(),
		View:        dashboard.Restore(role, string(query.Panel)),
		Panels:      dashboard.PanelsFor(role),
	}

	bookings, err := deps.Store.Bookings(ctx)
	if err != nil {
		return DashboardResult{}, fmt.Errorf("load bookings: %w", err)
	}

	if !query.Session.IsAdmin() {
		result.Profile = *query.Session.CurrentUser
		result.Bookings = booking.ForUser(bookings, query.Session.Username())
		return result, nil
	}

	users, err := deps.Store.Users(ctx)
	if err != nil {
		return DashboardResult{}, fmt.Errorf("load users: %w", err)
	}
	regs, err := deps.Store.Registrations(ctx)
	if err != nil {
		return DashboardResult{}, fmt.Errorf("load registrations: %w", err)
	}
	subs, err := deps.Store.Subscriptions(ctx)
	if err != nil {
		return DashboardResult{}, fmt.Errorf("load subscriptions: %w", err)
	}

	result.Analytics = BuildAnalytics(users, bookings, regs, subs)
	result.Users = listutil.Paginate(userRows(users, query.UserList.Search), query.UserList)
	result.UserSearch = query.UserList.Search
	result.Registrations = regs
	result.Subscriptions = subs
	result.Enquiries = bookings
	return result, nil
}

// BuildAnalytics computes the admin analytics panel.
// POST: totals equal the collection lengths; MostPopularClass is "None" without bookings
func BuildAnalytics(users []user.User, bookings []booking.Booking, regs []registration.Registration, subs []subscription.Subscription) Analytics {
	return Analytics{
		TotalUsers:         len(users),
		TotalBookings:      len(bookings),
		TotalRegistrations: len(regs),
		TotalSubscriptions: len(subs),
		MostPopularClass:   booking.MostPopularClass(bookings),
	}
}

func userRows(users []user.User, search string) []UserRow {
	matched := listutil.Filter(users, search, func(u user.User) []string {
		return []string{u.Username, u.Email, u.Role}
	})
	rows := make([]UserRow, 0, len(matched))
	for _, u := range matched {
		rows = append(rows, UserRow{
			Username:  u.Username,
			Role:      u.Role,
			Email:     u.Email,
			Phone:     u.Phone,
			Deletable: !u.IsAdmin(),
		})
	}
	return rows
}
