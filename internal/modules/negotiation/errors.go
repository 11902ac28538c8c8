package negotiation

import (
	"errors"

	"hotelbook/internal/modules/booking"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrStaleState        = errors.New("negotiation changed concurrently")

	// ErrBookingConflict is booking.ErrConflict so callers can match either.
	ErrBookingConflict = booking.ErrConflict
)
