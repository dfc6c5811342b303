package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"serene/internal/domain/registration"
	"serene/internal/domain/session"
)

// RegisterClassInput carries the registration form.
type RegisterClassInput struct {
	Session  session.Session
	FullName string
	Email    string
	Phone    string
	Class    string
	Date     string
	Time     string
}

// RegisterClassDeps holds dependencies for RegisterClass.
type RegisterClassDeps struct {
	Registrations RegistrationStore
}

// ExecuteRegisterClass appends a registration tagged with the session username.
// PRE: Session is Authenticated; all fields non-blank after trimming
// POST: registrations grows by one, or is unchanged on error
func ExecuteRegisterClass(ctx context.Context, input RegisterClassInput, deps RegisterClassDeps) (registration.Registration, error) {
	if input.Session.State() != session.Authenticated {
		return registration.Registration{}, ErrNotAuthenticated
	}
	reg := registration.Registration{
		Username: input.Session.Username(),
		FullName: strings.TrimSpace(input.FullName),
		Email:    strings.TrimSpace(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		Class:    strings.TrimSpace(input.Class),
		Date:     strings.TrimSpace(input.Date),
		Time:     strings.TrimSpace(input.Time),
	}
	if err := reg.Validate(); err != nil {
		return registration.Registration{}, err
	}

	err := deps.Registrations.UpdateRegistrations(ctx, func(all []registration.Registration) ([]registration.Registration, error) {
		return append(all, reg), nil
	})
	if err != nil {
		return registration.Registration{}, err
	}
	slog.Info("form_event", "event", "class_registered", "username", reg.Username, "class", reg.Class, "date", reg.Date)
	return reg, nil
}
