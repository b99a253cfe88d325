package shared

import "errors"

var (
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates missing or invalid input.
	ErrValidation = errors.New("validation failed")
	// ErrAmbiguousMatch indicates a lookup resolved to more than one row.
	ErrAmbiguousMatch = errors.New("ambiguous match")
	// ErrDuplicate indicates a unique constraint was violated.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrUnauthorized indicates a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrStoreUnavailable indicates the datastore timed out or is unreachable.
	ErrStoreUnavailable = errors.New("datastore unavailable")
)

// UserSafeMessage returns a message safe to surface to API clients.
// Unexpected errors collapse to a generic string so internals never leak.
func UserSafeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrAmbiguousMatch),
		errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrStoreUnavailable):
		return err.Error()
	default:
		return "internal error"
	}
}
