package contact

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Record is a single contact: a name, an ordered list of phones and an
// optional birthday. Only validated values are ever stored.
type Record struct {
	name        string
	phones      []string
	birthday    time.Time
	hasBirthday bool
}

// NewRecord creates a Record with no phones and no birthday.
func NewRecord(name string) (*Record, error) {
	n, err := ValidateName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact's name.
func (r *Record) Name() string { return r.name }

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []string { return slices.Clone(r.phones) }

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (time.Time, bool) { return r.birthday, r.hasBirthday }

// AddPhone validates phone and appends it. Duplicates are allowed.
func (r *Record) AddPhone(phone string) error {
	p, err := ValidatePhone(phone)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// EditPhone replaces the first phone equal to old with newPhone.
// A missing old phone is a no-op; an invalid newPhone is an error.
func (r *Record) EditPhone(old, newPhone string) error {
	p, err := ValidatePhone(newPhone)
	if err != nil {
		return err
	}
	if i := slices.Index(r.phones, old); i >= 0 {
		r.phones[i] = p
	}
	return nil
}

// RemovePhone removes the first phone equal to phone, if any.
func (r *Record) RemovePhone(phone string) {
	if i := slices.Index(r.phones, phone); i >= 0 {
		r.phones = slices.Delete(r.phones, i, i+1)
	}
}

// FindPhone reports whether phone is in the list.
func (r *Record) FindPhone(phone string) (string, bool) {
	if i := slices.Index(r.phones, phone); i >= 0 {
		return r.phones[i], true
	}
	return "", false
}

// AddBirthday parses s and sets or overwrites the birthday.
func (r *Record) AddBirthday(s string) error {
	d, err := ParseBirthday(s)
	if err != nil {
		return err
	}
	r.birthday = d
	r.hasBirthday = true
	return nil
}

// String renders the record as "Contact name: <name>, phones: <p1>; <p2>".
func (r *Record) String() string {
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(r.phones, "; "))
}
