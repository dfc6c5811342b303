package theme

import "errors"

// Preference is the site colour scheme chosen by a visitor.
type Preference string

// Preference values
const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

// Default is applied when a visitor has never toggled the theme.
const Default = Light

// ErrInvalidPreference is returned when parsing an unknown theme name.
var ErrInvalidPreference = errors.New("theme must be 'light' or 'dark'")

// Parse converts a stored or submitted value into a Preference.
// PRE: none
// POST: returns Light or Dark, or ErrInvalidPreference
func Parse(s string) (Preference, error) {
	switch Preference(s) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", ErrInvalidPreference
}

// Toggle returns the opposite preference.
// Anything that is not Dark is treated as Light.
func (p Preference) Toggle() Preference {
	if p == Dark {
		return Light
	}
	return Dark
}

// Icon returns the Font Awesome class shown on the toggle button.
func (p Preference) Icon() string {
	if p == Dark {
		return "fas fa-moon"
	}
	return "fas fa-sun"
}
