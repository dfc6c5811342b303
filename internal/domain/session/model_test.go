package session_test

import (
	"testing"

	"serene/internal/domain/session"
	"serene/internal/domain/user"
)

func TestSession_States(t *testing.T) {
	anon := session.Anon()
	if anon.State() != session.Anonymous {
		t.Errorf("Anon().State() = %v", anon.State())
	}
	if anon.Username() != "" || anon.Role() != "" || anon.IsAdmin() {
		t.Error("anonymous session should expose no identity")
	}

	// a flag without a user is still anonymous
	broken := session.Session{IsLoggedIn: true}
	if broken.State() != session.Anonymous {
		t.Error("flag without user must be anonymous")
	}

	s := session.For(user.User{Username: "priya", Role: user.RoleUser})
	if s.State() != session.Authenticated || s.Username() != "priya" {
		t.Errorf("For() = %+v", s)
	}
	if s.WelcomeName() != "priya" {
		t.Errorf("WelcomeName = %q", s.WelcomeName())
	}

	admin := session.For(user.User{Username: "admin", Role: user.RoleAdmin})
	if !admin.IsAdmin() || admin.WelcomeName() != "Admin" {
		t.Errorf("admin session = %+v", admin)
	}
	if session.Authenticated.String() != "authenticated" || session.Anonymous.String() != "anonymous" {
		t.Error("unexpected State strings")
	}
}
