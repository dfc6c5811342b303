package web

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"serene/internal/adapters/http/middleware"
	"serene/internal/application/orchestrators"
	"serene/internal/domain/booking"
	"serene/internal/domain/dashboard"
	"serene/internal/domain/registration"
	"serene/internal/domain/subscription"
	"serene/internal/domain/user"
)

const flashCookieName = "serene_flash"

// Flash is a one-shot toast carried across a redirect.
type Flash struct {
	Message string `json:"message"`
	IsError bool   `json:"error"`
}

// toastResponse is the JSON body of every form endpoint.
type toastResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Toast text for errors a visitor can cause.
const (
	toastRequiredFields = "Please fill in all required fields!"
	toastLoginRequired  = "Please log in to continue!"
	toastNewsletterAuth = "Please log in to subscribe to the newsletter!"
)

var errorToasts = []struct {
	err    error
	status int
	text   string
}{
	{orchestrators.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password!"},
	{orchestrators.ErrUsernameTaken, http.StatusConflict, "Username already exists! Try a different one."},
	{orchestrators.ErrDuplicateSubscription, http.StatusConflict, "You are already subscribed to the newsletter!"},
	{subscription.ErrInvalidEmailFormat, http.StatusBadRequest, "Please enter a valid email address!"},
	{orchestrators.ErrNotAuthenticated, http.StatusUnauthorized, toastLoginRequired},
	{orchestrators.ErrCannotDeleteAdmin, http.StatusBadRequest, "Admin accounts cannot be deleted!"},
	{orchestrators.ErrUserNotFound, http.StatusNotFound, "User not found!"},
	{orchestrators.ErrForbidden, http.StatusForbidden, "Only admins can do that!"},
	{orchestrators.ErrCurrentPasswordWrong, http.StatusBadRequest, "Current password is incorrect!"},
	{orchestrators.ErrNewPasswordSame, http.StatusBadRequest, "New password must be different from the current one!"},
	{user.ErrPasswordTooLong, http.StatusBadRequest, "Password is too long! Please choose a shorter one."},
	{dashboard.ErrPanelNotAllowed, http.StatusForbidden, "That section is not available on your dashboard!"},
	{dashboard.ErrUnknownCommand, http.StatusBadRequest, "Unknown dashboard action!"},
}

var requiredFieldErrors = []error{
	user.ErrEmptyUsername, user.ErrEmptyPassword, user.ErrEmptyEmail, user.ErrEmptyPhone,
	booking.ErrEmptyClass, booking.ErrEmptyDate, booking.ErrEmptyTime,
	registration.ErrEmptyFullName, registration.ErrEmptyEmail, registration.ErrEmptyPhone,
	registration.ErrEmptyClass, registration.ErrEmptyDate, registration.ErrEmptyTime,
}

// toastFor maps a visitor-caused error to its status and toast text.
// ok is false for anything else, which the caller must treat as an internal error.
func toastFor(err error) (status int, text string, ok bool) {
	for _, t := range errorToasts {
		if errors.Is(err, t.err) {
			return t.status, t.text, true
		}
	}
	for _, e := range requiredFieldErrors {
		if errors.Is(err, e) {
			return http.StatusBadRequest, toastRequiredFields, true
		}
	}
	return 0, "", false
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("json_write_failed", "error", err)
	}
}

// formValues returns the submitted fields from either a form post or a flat JSON object.
// JSON bodies reject values that are not strings.
func formValues(r *http.Request) (url.Values, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body map[string]string
		dec := json.NewDecoder(io.LimitReader(r.Body, 64<<10))
		if err := dec.Decode(&body); err != nil {
			return nil, fmt.Errorf("decode json body: %w", err)
		}
		vals := url.Values{}
		for k, v := range body {
			vals.Set(k, v)
		}
		return vals, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// respond finishes a form submission: a JSON toast for API clients, otherwise a flash and a
// redirect to next. Errors without a toast mapping become a 500.
func respond(w http.ResponseWriter, r *http.Request, next, message string, err error) {
	if err != nil {
		status, text, ok := toastFor(err)
		if !ok {
			internalError(w, err)
			return
		}
		respondError(w, r, next, status, text)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, toastResponse{Message: message})
		return
	}
	setFlash(w, Flash{Message: message})
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func respondError(w http.ResponseWriter, r *http.Request, next string, status int, text string) {
	if wantsJSON(r) {
		writeJSON(w, status, toastResponse{Error: text})
		return
	}
	setFlash(w, Flash{Message: text, IsError: true})
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func badForm(w http.ResponseWriter, r *http.Request, err error) {
	slog.Debug("bad_form", "path", r.URL.Path, "error", err)
	if wantsJSON(r) {
		writeJSON(w, http.StatusBadRequest, toastResponse{Error: "Invalid form submission"})
		return
	}
	http.Error(w, "Invalid form submission", http.StatusBadRequest)
}

func setFlash(w http.ResponseWriter, f Flash) {
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		HttpOnly: true,
		Secure:   middleware.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   60,
	})
}

// popFlash reads and clears the pending flash, if any.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Value: "", Path: "/", MaxAge: -1})
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return nil
	}
	return &f
}

// safeNext returns next when it is a same-site path, otherwise fallback.
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
