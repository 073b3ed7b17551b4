package auth

import "errors"

// Sentinel errors raised by the auth core. The HTTP boundary maps each kind
// to a fixed status code and message and never leaks anything else.
var (
	ErrValidation         = errors.New("auth: invalid input")
	ErrDuplicateEmail     = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrInvalidRoles       = errors.New("auth: invalid roles specified")
	ErrNotFound           = errors.New("auth: not found")
	ErrTokenMalformed     = errors.New("auth: malformed token")
	ErrTokenBadSignature  = errors.New("auth: invalid token signature")
	ErrTokenExpired       = errors.New("auth: token expired")
	ErrStoreUnavailable   = errors.New("auth: store unavailable")
)
