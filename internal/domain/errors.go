package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrBookingNotFound = errors.New("booking not found")
)

var (
	ErrPastSlot           = errors.New("slot is in the past")
	ErrCrossesDayBoundary = errors.New("booking crosses midnight")
	ErrTimeConflict       = errors.New("time conflicts with an existing booking")
	ErrInsufficientCredit = errors.New("not enough visit credits")
	ErrNegativeBalance    = errors.New("balance cannot go negative")
	ErrConflict           = errors.New("concurrent booking detected, please retry")
	ErrDuplicateRequest   = errors.New("request already processed")
)

var (
	ErrNotificationDeliveryFailed = errors.New("notification delivery failed")
)

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")
)

// ConflictError carries the interval of the booking that blocks a request.
type ConflictError struct {
	BookingID string
	Existing  Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTimeConflict.Error(), e.Existing)
}

func (e *ConflictError) Unwrap() error {
	return ErrTimeConflict
}
