package types

import "errors"

// Entity errors. Absence is never an error: lookups, updates and deletes
// against unknown IDs report nil or false instead.
var (
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
	ErrInvalidRole = errors.New("invalid user role")

	// ErrEmailTaken is the validation conflict returned when a user is
	// created with an email that is already stored.
	ErrEmailTaken = errors.New("user with this email already exists")
)

// ErrTransport wraps failures reaching a remote store: dial errors, non-JSON
// replies, and server-side errors without a more specific mapping.
var ErrTransport = errors.New("transport failure")
