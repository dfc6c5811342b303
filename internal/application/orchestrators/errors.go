package orchestrators

import "errors"

// Errors surfaced to visitors. The web layer maps them to toast text.
var (
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUsernameTaken         = errors.New("username already exists")
	ErrDuplicateSubscription = errors.New("already subscribed to the newsletter")
	ErrNotAuthenticated      = errors.New("not logged in")
	ErrCannotDeleteAdmin     = errors.New("admin accounts cannot be deleted")
	ErrUserNotFound          = errors.New("user not found")
	ErrForbidden             = errors.New("admin role required")
	ErrCurrentPasswordWrong  = errors.New("current password is incorrect")
	ErrNewPasswordSame       = errors.New("new password must be different from current password")
)
