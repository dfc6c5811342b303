package session

import "serene/internal/domain/user"

// State is the session manager's state.
type State int

// Session states
const (
	Anonymous State = iota
	Authenticated
)

// String returns the state name used in logs.
func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session is the explicit session context passed to renderers and form controllers.
// INVARIANT: IsLoggedIn is true iff CurrentUser is non-nil.
type Session struct {
	IsLoggedIn  bool
	CurrentUser *user.User
}

// Anon returns the anonymous session.
func Anon() Session {
	return Session{}
}

// For returns an authenticated session for u.
func For(u user.User) Session {
	return Session{IsLoggedIn: true, CurrentUser: &u}
}

// State reports Anonymous or Authenticated.
func (s Session) State() State {
	if s.IsLoggedIn && s.CurrentUser != nil {
		return Authenticated
	}
	return Anonymous
}

// Username returns the current username, or "" when anonymous.
func (s Session) Username() string {
	if s.State() != Authenticated {
		return ""
	}
	return s.CurrentUser.Username
}

// Role returns the current role, or "" when anonymous.
func (s Session) Role() string {
	if s.State() != Authenticated {
		return ""
	}
	return s.CurrentUser.Role
}

// IsAdmin reports whether the session belongs to an admin.
func (s Session) IsAdmin() bool {
	return s.Role() == user.RoleAdmin
}

// WelcomeName is the navbar greeting: "Admin" for admins, else the username.
func (s Session) WelcomeName() string {
	if s.IsAdmin() {
		return "Admin"
	}
	return s.Username()
}
