package entities

import "errors"

// Sentinel errors for the domain. Repositories and services wrap these;
// handlers translate them to HTTP statuses. Ownership mismatches are
// deliberately distinct from not-found so a caller can tell a forbidden
// mutation apart from a genuinely missing record.
var (
	ErrItemNotFound    = errors.New("item not found")
	ErrOutfitNotFound  = errors.New("outfit not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrForbidden       = errors.New("ownership mismatch")
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid credentials")
	ErrNotEnoughItems  = errors.New("at least two items in the wardrobe are required")
	ErrValidation      = errors.New("validation failed")
)
