package repositories

import "errors"

// Sentinel errors returned by every repository implementation. Handlers
// translate these into HTTP statuses in one place, so no raw store failure
// reaches a response un-translated.
var (
	// ErrNotFound means the identifier was well-formed but no record matches.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidID means the identifier is not a well-formed object id.
	ErrInvalidID = errors.New("malformed id")

	// ErrDuplicate means a write violated a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate value for unique field")
)
