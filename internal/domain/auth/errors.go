package auth

import "errors"

// ErrSessionNotFound is returned by session stores for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExpired is returned when a stored session is past its expiry.
var ErrSessionExpired = errors.New("session expired")
