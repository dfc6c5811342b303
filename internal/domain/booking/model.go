package booking

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyClass = errors.New("class is required")
	ErrEmptyDate  = errors.New("date is required")
	ErrEmptyTime  = errors.New("time is required")
)

// Booking is a class enquiry. Members see it as a booking, admins as an enquiry.
type Booking struct {
	Username string `json:"username"`
	Class    string `json:"class"`
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // as printed on the class card, e.g. "7:00 AM"
}

// Validate checks the booking's required fields.
// PRE: Booking struct is populated
// POST: Returns nil if valid, error describing the first violation otherwise
func (b *Booking) Validate() error {
	if strings.TrimSpace(b.Class) == "" {
		return ErrEmptyClass
	}
	if strings.TrimSpace(b.Date) == "" {
		return ErrEmptyDate
	}
	if strings.TrimSpace(b.Time) == "" {
		return ErrEmptyTime
	}
	return nil
}

// ForUser returns the bookings owned by username, in insertion order.
func ForUser(all []Booking, username string) []Booking {
	var out []Booking
	for _, b := range all {
		if b.Username == username {
			out = append(out, b)
		}
	}
	return out
}

// MostPopularClass returns the class with the most bookings.
// Ties go to the class that first appeared in the scan. Returns "None" when bookings is empty.
func MostPopularClass(all []Booking) string {
	counts := make(map[string]int)
	var order []string
	for _, b := range all {
		if _, seen := counts[b.Class]; !seen {
			order = append(order, b.Class)
		}
		counts[b.Class]++
	}
	if len(order) == 0 {
		return NoPopularClass
	}
	best := order[0]
	for _, class := range order[1:] {
		if counts[class] > counts[best] {
			best = class
		}
	}
	return best
}

// NoPopularClass is reported when there are no bookings.
const NoPopularClass = "None"
