package dashboard

import (
	"errors"

	"serene/internal/domain/user"
)

// Panel is a mutually exclusive sub-panel of a role's dashboard.
type Panel string

// Panels. None is the initial state for both roles.
const (
	PanelNone Panel = ""

	// admin
	PanelAnalytics     Panel = "analytics"
	PanelUsers         Panel = "users"
	PanelRegistrations Panel = "registrations"
	PanelSubscriptions Panel = "subscriptions"
	PanelEnquiries     Panel = "enquiries"

	// user
	PanelProfile  Panel = "profile"
	PanelBookings Panel = "bookings"
)

// AdminPanels lists the admin sub-panels in menu order.
var AdminPanels = []Panel{PanelAnalytics, PanelUsers, PanelRegistrations, PanelSubscriptions, PanelEnquiries}

// UserPanels lists the standard user sub-panels in menu order.
var UserPanels = []Panel{PanelProfile, PanelBookings}

// ErrPanelNotAllowed is returned when a role selects a panel outside its dashboard.
var ErrPanelNotAllowed = errors.New("that section is not available on your dashboard")

// PanelsFor returns the panels available to role.
func PanelsFor(role string) []Panel {
	if role == user.RoleAdmin {
		return AdminPanels
	}
	return UserPanels
}

// Allowed reports whether role may show panel. PanelNone is always allowed.
func Allowed(role string, p Panel) bool {
	if p == PanelNone {
		return true
	}
	for _, q := range PanelsFor(role) {
		if q == p {
			return true
		}
	}
	return false
}

// View is the single-active-panel state machine for one dashboard.
type View struct {
	Role   string
	Active Panel
}

// NewView returns the initial state: no panel visible.
func NewView(role string) View {
	return View{Role: role, Active: PanelNone}
}

// Select makes p the only visible panel.
// PRE: none
// POST: Active == p on success; state unchanged on ErrPanelNotAllowed
func (v *View) Select(p Panel) error {
	if !Allowed(v.Role, p) {
		return ErrPanelNotAllowed
	}
	v.Active = p
	return nil
}

// Close hides whichever panel is visible.
func (v *View) Close() {
	v.Active = PanelNone
}

// Visible reports whether p is the active panel.
func (v View) Visible(p Panel) bool {
	return p != PanelNone && v.Active == p
}

// Restore rebuilds a view from a persisted panel name, falling back to None when
// the stored panel is not valid for role.
func Restore(role string, stored string) View {
	v := NewView(role)
	if err := v.Select(Panel(stored)); err != nil {
		return NewView(role)
	}
	return v
}
