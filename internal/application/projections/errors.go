package projections

import "errors"

// Projection errors
var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrPostNotFound     = errors.New("journal post not found")
)
