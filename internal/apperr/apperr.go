package apperr

import "errors"

// Error categories used across services and mapped onto HTTP statuses by the
// controllers.
//
// Wrap them with fmt.Errorf("...: %w", ...) and check with errors.Is:
//
//	if errors.Is(err, apperr.ErrNotFound) {
//	    // 404
//	}
var (
	// ErrNotFound is returned when a lookup by identifier matches no row.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for malformed or out-of-range input.
	ErrValidation = errors.New("invalid input")

	// ErrStore is returned when the underlying database operation fails.
	ErrStore = errors.New("store operation failed")

	// ErrNetwork is returned when a remote request fails to complete or
	// comes back with a non-success status.
	ErrNetwork = errors.New("remote request failed")

	// ErrAuth is returned on login with an invalid password.
	ErrAuth = errors.New("invalid credentials")
)

// RecoveredLocally reports whether the error is one the sync layer absorbs
// by leaving the queue entry in place for a later drain pass. Only network
// errors qualify; store and validation failures always surface.
func RecoveredLocally(err error) bool {
	return errors.Is(err, ErrNetwork)
}
