package core

import "errors"

// Sentinel errors returned by the services. Handlers map these to
// HTTP statuses; anything else becomes a 500.
var (
	ErrJobNotFound     = errors.New("job not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrOrgNotFound     = errors.New("organization not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNotAnEmployer   = errors.New("not an employer")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
)
