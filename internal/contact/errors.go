package contact

import "errors"

// Sentinel errors for caller-checkable validation failures.
var (
	ErrEmptyName    = errors.New("contact: name is required")
	ErrInvalidPhone = errors.New("contact: phone number must be 10 digits")
	ErrInvalidDate  = errors.New("contact: invalid date")
)
