package model

import "errors"

// Common errors used across the application
var (
	// Client-side verification, raised before any network call
	ErrInvalidParameter = errors.New("invalid parameter")

	// The server answered with a status the operation does not accept
	ErrInvalidResponse = errors.New("invalid response")

	// Lookup errors
	ErrNotFound         = errors.New("not found")
	ErrGameNotFound     = notFound("game not found")
	ErrRoundNotFound    = notFound("round not found")
	ErrEntryNotFound    = notFound("entry not found")
	ErrResourceNotFound = notFound("resource not found")

	// Registration errors
	ErrCapacityExceeded = errors.New("round has no seats remaining")

	// Catalog errors
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// notFoundError is a lookup miss that also matches ErrNotFound
type notFoundError struct {
	msg string
}

func notFound(msg string) error {
	return &notFoundError{msg: msg}
}

func (e *notFoundError) Error() string {
	return e.msg
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound
}
