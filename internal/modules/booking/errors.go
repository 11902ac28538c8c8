package booking

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("booking conflict")
	ErrNotAccepted = errors.New("negotiation is not accepted")
)
