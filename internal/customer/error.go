package customer

import "errors"

var (
	ErrAlreadyBanned = errors.New("customer is already banned")
	ErrNotBanned     = errors.New("customer is not banned")
	ErrInvalidPhone  = errors.New("phone number must be 10 digits")
)
