package shell

import (
	"fmt"
	"strings"

	"github.com/smileynet/addressbook/internal/contact"
)

type handler func(s *Shell, args []string) (string, error)

var commands = map[string]handler{
	"hello":         hello,
	"help":          help,
	"add":           addContact,
	"change":        changeContact,
	"phone":         showPhone,
	"all":           showAll,
	"add-birthday":  addBirthday,
	"show-birthday": showBirthday,
	"birthdays":     upcomingBirthdays,
	"delete":        deleteContact,
	"remove-phone":  removePhone,
}

const defaultHelp = `Commands: hello, add, change, phone, all, add-birthday, show-birthday, birthdays, delete, remove-phone, help, close, exit`

func hello(*Shell, []string) (string, error) {
	return "How can I help you?", nil
}

func help(s *Shell, _ []string) (string, error) {
	return s.help, nil
}

// find returns the record for name or ErrNotFound.
func (s *Shell) find(name string) (*contact.Record, error) {
	r, ok := s.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return r, nil
}

// addContact appends a phone, creating the contact on first use.
// Extra arguments are ignored.
func addContact(s *Shell, args []string) (string, error) {
	if len(args) < 2 {
		return "", ErrMissingArgument
	}
	name, phone := args[0], args[1]

	if r, ok := s.book.Find(name); ok {
		if err := r.AddPhone(phone); err != nil {
			return "", err
		}
		s.dirty = true
		return "Contact updated.", nil
	}

	r, err := contact.NewRecord(name)
	if err != nil {
		return "", err
	}
	// Validate before inserting so a bad phone never leaves an empty contact behind.
	if err := r.AddPhone(phone); err != nil {
		return "", err
	}
	if err := s.book.AddRecord(r); err != nil {
		return "", err
	}
	s.dirty = true
	return "Contact added.", nil
}

func changeContact(s *Shell, args []string) (string, error) {
	if len(args) != 3 {
		return "", ErrMissingArgument
	}
	r, err := s.find(args[0])
	if err != nil {
		return "", err
	}
	if err := r.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	s.dirty = true
	return "Contact changed.", nil
}

func showPhone(s *Shell, args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrMissingName
	}
	r, err := s.find(args[0])
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

func showAll(s *Shell, _ []string) (string, error) {
	records := s.book.Records()
	if len(records) == 0 {
		return "No contacts saved.", nil
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n"), nil
}

func addBirthday(s *Shell, args []string) (string, error) {
	if len(args) != 2 {
		return "", ErrMissingArgument
	}
	name, date := args[0], args[1]

	if r, ok := s.book.Find(name); ok {
		if err := r.AddBirthday(date); err != nil {
			return "", err
		}
		s.dirty = true
		return "Contact changed.", nil
	}

	r, err := contact.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := r.AddBirthday(date); err != nil {
		return "", err
	}
	if err := s.book.AddRecord(r); err != nil {
		return "", err
	}
	s.dirty = true
	return fmt.Sprintf("New contact %s with birthday %s added.", name, date), nil
}

func showBirthday(s *Shell, args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrMissingName
	}
	r, err := s.find(args[0])
	if err != nil {
		return "", err
	}
	bd, ok := r.Birthday()
	if !ok {
		return "Birthday not set.", nil
	}
	return bd.Format(contact.BirthdayLayout), nil
}

func upcomingBirthdays(s *Shell, _ []string) (string, error) {
	upcoming := s.book.UpcomingBirthdays(s.now(), s.windowDays)
	if len(upcoming) == 0 {
		return "No upcoming birthdays.", nil
	}
	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = fmt.Sprintf("%s: %s", u.Name, u.CongratulationDate)
	}
	return strings.Join(lines, "\n"), nil
}

func deleteContact(s *Shell, args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrMissingName
	}
	if _, err := s.find(args[0]); err != nil {
		return "", err
	}
	s.book.Delete(args[0])
	s.dirty = true
	return "Contact deleted.", nil
}

func removePhone(s *Shell, args []string) (string, error) {
	if len(args) != 2 {
		return "", ErrMissingArgument
	}
	r, err := s.find(args[0])
	if err != nil {
		return "", err
	}
	if _, ok := r.FindPhone(args[1]); !ok {
		return "Phone not found.", nil
	}
	r.RemovePhone(args[1])
	s.dirty = true
	return "Phone removed.", nil
}
