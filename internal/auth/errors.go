package auth

import "errors"

// Caller-facing error taxonomy. Token failures of every flavor (missing,
// malformed, expired, bad signature, hash mismatch, record missing or expired)
// collapse into ErrUnauthenticated so responses give an attacker nothing to
// probe; the finer-grained reason only reaches the log.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrUserNotFound       = errors.New("user not found")
)
