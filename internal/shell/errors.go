package shell

import (
	"errors"

	"github.com/smileynet/addressbook/internal/contact"
)

// Sentinel errors raised while dispatching a command.
var (
	ErrNotFound        = errors.New("shell: contact not found")
	ErrMissingArgument = errors.New("shell: missing argument")
	// ErrMissingName is the missing-argument case for commands that take only a name.
	ErrMissingName = errors.New("shell: missing name")
)

// User-facing messages for recoverable errors.
const (
	MsgMissingName     = "Give me name please."
	MsgMissingArgument = "Give me name and phone please."
	MsgNotFound        = "Contact not found."
	MsgInvalidPhone    = "Phone number must be 10 digits."
	MsgInvalidDate     = "Invalid date format. Use YYYY-MM-DD."
	MsgInvalidCommand  = "Invalid command."
)

// ErrorMessage maps err to the fixed message shown to the user.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingName), errors.Is(err, contact.ErrEmptyName):
		return MsgMissingName
	case errors.Is(err, ErrMissingArgument):
		return MsgMissingArgument
	case errors.Is(err, ErrNotFound):
		return MsgNotFound
	case errors.Is(err, contact.ErrInvalidPhone):
		return MsgInvalidPhone
	case errors.Is(err, contact.ErrInvalidDate):
		return MsgInvalidDate
	default:
		return err.Error()
	}
}
