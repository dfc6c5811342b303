package web

import (
	"errors"
	"net/http"

	"serene/internal/adapters/http/middleware"
	"serene/internal/application/orchestrators"
)

// handleRegister handles POST /register
func handleRegister(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(r)
	if err != nil {
		badForm(w, r, err)
		return
	}
	input := orchestrators.RegisterClassInput{
		Session:  middleware.SessionFrom(r.Context()),
		FullName: form.Get("fullname"),
		Email:    form.Get("email"),
		Phone:    form.Get("phone"),
		Class:    form.Get("class"),
		Date:     form.Get("date"),
		Time:     form.Get("time"),
	}
	_, err = orchestrators.ExecuteRegisterClass(r.Context(), input, orchestrators.RegisterClassDeps{Registrations: stores.Records})
	if errors.Is(err, orchestrators.ErrNotAuthenticated) {
		respond(w, r, "/login?next=%2F%23classes", "", err)
		return
	}
	respond(w, r, "/#classes", orchestrators.MsgRegistrationSuccess, err)
}

// handleEnquiry handles POST /enquiry
func handleEnquiry(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(r)
	if err != nil {
		badForm(w, r, err)
		return
	}
	input := orchestrators.SubmitEnquiryInput{
		Session: middleware.SessionFrom(r.Context()),
		Class:   form.Get("class"),
		Date:    form.Get("date"),
		Time:    form.Get("time"),
	}
	deps := orchestrators.SubmitEnquiryDeps{Bookings: stores.Records, Mailer: emailSender}
	_, err = orchestrators.ExecuteSubmitEnquiry(r.Context(), input, deps)
	if errors.Is(err, orchestrators.ErrNotAuthenticated) {
		respond(w, r, "/login?next=%2F%23schedule", "", err)
		return
	}
	respond(w, r, "/#schedule", orchestrators.MsgEnquirySuccess, err)
}

// handleNewsletter handles POST /newsletter. An anonymous visitor is sent to the login form.
func handleNewsletter(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(r)
	if err != nil {
		badForm(w, r, err)
		return
	}
	input := orchestrators.SubscribeNewsletterInput{
		Session: middleware.SessionFrom(r.Context()),
		Email:   form.Get("email"),
	}
	deps := orchestrators.SubscribeNewsletterDeps{Subscriptions: stores.Records, Mailer: emailSender}
	_, err = orchestrators.ExecuteSubscribeNewsletter(r.Context(), input, deps)
	if errors.Is(err, orchestrators.ErrNotAuthenticated) {
		respondError(w, r, "/login?next=%2F%23newsletter", http.StatusUnauthorized, toastNewsletterAuth)
		return
	}
	respond(w, r, "/#newsletter", orchestrators.MsgSubscribeSuccess, err)
}
