package clinic

import "errors"

// Error classes surfaced to the user. Operations wrap them with detail;
// match with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicate          = errors.New("already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrProtectedRecord    = errors.New("protected record")
	ErrAlreadyCompleted   = errors.New("appointment already completed")
	ErrUnauthenticated    = errors.New("not logged in")
	ErrForbidden          = errors.New("not permitted for this role")
)
