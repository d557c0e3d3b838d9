package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failure surfaced by the console wraps one of the
// first five sentinels so callers can branch with errors.Is.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("record not found")
	ErrUnavailable     = errors.New("backend unavailable")
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	ErrNoSession          = fmt.Errorf("%w: no active session", ErrUnauthenticated)

	ErrInvalidStatus   = fmt.Errorf("%w: invalid ticket status", ErrValidation)
	ErrInvalidPriority = fmt.Errorf("%w: invalid priority level", ErrValidation)
	ErrInvalidCategory = fmt.Errorf("%w: invalid issue category", ErrValidation)
	ErrMissingCustomer = fmt.Errorf("%w: a customer reference is required", ErrValidation)
	ErrInvalidRole     = fmt.Errorf("%w: invalid role", ErrValidation)
	ErrMissingPassword = fmt.Errorf("%w: password is required", ErrValidation)

	ErrInvalidCampaignStatus = fmt.Errorf("%w: invalid campaign status", ErrValidation)
	ErrCampaignDates         = fmt.Errorf("%w: end_date is before start_date", ErrValidation)
)

// ErrStaleView is returned when a view load finished after a newer load for
// the same view started. The result must be discarded.
var ErrStaleView = errors.New("view superseded by a newer load")
