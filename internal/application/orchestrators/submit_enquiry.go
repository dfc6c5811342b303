package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"serene/internal/adapters/email"
	"serene/internal/domain/booking"
	"serene/internal/domain/session"
)

// SubmitEnquiryInput carries the enquiry form, usually prefilled from a calendar event.
type SubmitEnquiryInput struct {
	Session session.Session
	Class   string
	Date    string
	Time    string
}

// SubmitEnquiryDeps holds dependencies for SubmitEnquiry.
type SubmitEnquiryDeps struct {
	Bookings BookingStore
	Mailer   email.Sender // optional
}

// ExecuteSubmitEnquiry appends a booking for the session user and acknowledges it by email.
// PRE: Session is Authenticated
// POST: bookings grows by one; the email is best effort and never fails the enquiry
func ExecuteSubmitEnquiry(ctx context.Context, input SubmitEnquiryInput, deps SubmitEnquiryDeps) (booking.Booking, error) {
	if input.Session.State() != session.Authenticated {
		return booking.Booking{}, ErrNotAuthenticated
	}
	b := booking.Booking{
		Username: input.Session.Username(),
		Class:    strings.TrimSpace(input.Class),
		Date:     strings.TrimSpace(input.Date),
		Time:     strings.TrimSpace(input.Time),
	}
	if err := b.Validate(); err != nil {
		return booking.Booking{}, err
	}

	err := deps.Bookings.UpdateBookings(ctx, func(all []booking.Booking) ([]booking.Booking, error) {
		return append(all, b), nil
	})
	if err != nil {
		return booking.Booking{}, err
	}
	slog.Info("form_event", "event", "enquiry_submitted", "username", b.Username, "class", b.Class, "date", b.Date)

	if to := input.Session.CurrentUser.Email; to != "" && deps.Mailer != nil {
		req, err := email.EnquiryReceived(to, b.Username, b.Class, b.Date, b.Time)
		if err == nil {
			_, err = deps.Mailer.Send(ctx, req)
		}
		if err != nil {
			slog.Warn("email_event", "event", "enquiry_ack_failed", "username", b.Username, "error", err)
		}
	}
	return b, nil
}
