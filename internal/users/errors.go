package users

import "errors"

var (
	// ErrNotFound indicates the user record does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyOnboarded indicates the one-time onboarding already ran.
	ErrAlreadyOnboarded = errors.New("onboarding already completed")

	// ErrPersistence is the generic failure surfaced when storage fails.
	ErrPersistence = errors.New("failed to update profile")
)
