package subscription

import (
	"errors"
	"regexp"
)

// ErrInvalidEmailFormat is returned for addresses that are not local@domain.tld.
var ErrInvalidEmailFormat = errors.New("please enter a valid email address")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Subscription records a newsletter sign-up.
// INVARIANT: at most one Subscription per Username in the collection.
type Subscription struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ValidateEmail checks the address against the local@domain.tld pattern.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmailFormat
	}
	return nil
}

// HasUsername reports whether username already holds a subscription.
func HasUsername(all []Subscription, username string) bool {
	for _, s := range all {
		if s.Username == username {
			return true
		}
	}
	return false
}
