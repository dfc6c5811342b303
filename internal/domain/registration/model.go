package registration

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyFullName = errors.New("full name is required")
	ErrEmptyEmail    = errors.New("email is required")
	ErrEmptyPhone    = errors.New("phone is required")
	ErrEmptyClass    = errors.New("class is required")
	ErrEmptyDate     = errors.New("date is required")
	ErrEmptyTime     = errors.New("time is required")
)

// Registration is a class sign-up submitted from the registration modal.
type Registration struct {
	Username string `json:"username"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Class    string `json:"class"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// Validate checks that every form field was filled in.
// PRE: fields are already trimmed
// POST: Returns nil if valid, error describing the first violation otherwise
func (r *Registration) Validate() error {
	checks := []struct {
		value string
		err   error
	}{
		{r.FullName, ErrEmptyFullName},
		{r.Email, ErrEmptyEmail},
		{r.Phone, ErrEmptyPhone},
		{r.Class, ErrEmptyClass},
		{r.Date, ErrEmptyDate},
		{r.Time, ErrEmptyTime},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return c.err
		}
	}
	return nil
}
