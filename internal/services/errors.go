package services

import "errors"

var (
	// ErrNotFound is returned when a record is absent or owned by someone else.
	// The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCode is returned when no unconsumed verification code matches
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrCodeExpired is returned when a matching code exists but its expiry has passed
	ErrCodeExpired = errors.New("verification code has expired")
)
