package identity

import "errors"

var (
	// ErrNotFound is returned when no instructor matches the lookup.
	ErrNotFound = errors.New("identity: instructor not found")

	// ErrInvalidResetToken is returned when a password reset token is
	// unknown or expired.
	ErrInvalidResetToken = errors.New("identity: invalid reset token")
)
