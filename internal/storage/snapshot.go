package storage

import (
	"fmt"

	"github.com/smileynet/addressbook/internal/contact"
)

// document is the on-disk shape shared by the file backends.
type document struct {
	Contacts []entry `json:"contacts" yaml:"contacts"`
}

// entry is one persisted contact. Birthday uses contact.BirthdayLayout.
type entry struct {
	Name     string   `json:"name" yaml:"name"`
	Phones   []string `json:"phones" yaml:"phones"`
	Birthday string   `json:"birthday,omitempty" yaml:"birthday,omitempty"`
}

func toEntry(r *contact.Record) entry {
	e := entry{Name: r.Name(), Phones: r.Phones()}
	if e.Phones == nil {
		e.Phones = []string{}
	}
	if bd, ok := r.Birthday(); ok {
		e.Birthday = bd.Format(contact.BirthdayLayout)
	}
	return e
}

func snapshot(b *contact.Book) document {
	records := b.Records()
	doc := document{Contacts: make([]entry, 0, len(records))}
	for _, r := range records {
		doc.Contacts = append(doc.Contacts, toEntry(r))
	}
	return doc
}

// fromEntry rebuilds a record, re-validating every stored field.
func fromEntry(e entry) (*contact.Record, error) {
	r, err := contact.NewRecord(e.Name)
	if err != nil {
		return nil, err
	}
	for _, p := range e.Phones {
		if err := r.AddPhone(p); err != nil {
			return nil, fmt.Errorf("contact %q: %w", e.Name, err)
		}
	}
	if e.Birthday != "" {
		if err := r.AddBirthday(e.Birthday); err != nil {
			return nil, fmt.Errorf("contact %q: %w", e.Name, err)
		}
	}
	return r, nil
}

func restore(doc document) (*contact.Book, error) {
	b := contact.NewBook()
	for i, e := range doc.Contacts {
		r, err := fromEntry(e)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if err := b.AddRecord(r); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return b, nil
}
