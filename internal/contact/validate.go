package contact

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// BirthdayLayout is the accepted input and display format for birthdays.
const BirthdayLayout = "2006-01-02"

// Validation tags applied to raw field input.
const (
	nameRule  = "required"
	phoneRule = "len=10,number"
)

var validate = validator.New()

// ValidateName returns s unchanged, or ErrEmptyName if it is empty.
func ValidateName(s string) (string, error) {
	if err := validate.Var(s, nameRule); err != nil {
		return "", ErrEmptyName
	}
	return s, nil
}

// ValidatePhone returns s unchanged if it is exactly 10 decimal digits.
// Separators and country codes are rejected.
func ValidatePhone(s string) (string, error) {
	if err := validate.Var(s, phoneRule); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, s)
	}
	return s, nil
}

// ParseBirthday parses s in BirthdayLayout and returns the date at midnight UTC.
func ParseBirthday(s string) (time.Time, error) {
	t, err := time.Parse(BirthdayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (use YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return t, nil
}
