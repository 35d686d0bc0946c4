// Package storage persists the address book as a single whole-book snapshot.
package storage

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smileynet/addressbook/internal/contact"
)

// Store loads and saves an entire Book.
type Store interface {
	// Load returns the saved book, or an empty book if nothing was saved yet.
	Load() (*contact.Book, error)
	// Save replaces the saved state with b.
	Save(b *contact.Book) error
	// Close releases any handle held by the store.
	Close() error
}

// Supported storage drivers.
const (
	DriverJSON   = "json"
	DriverYAML   = "yaml"
	DriverSQLite = "sqlite"
)

// Drivers lists the accepted driver names.
var Drivers = []string{DriverJSON, DriverYAML, DriverSQLite}

// ErrUnknownDriver indicates a driver name Open does not recognize.
var ErrUnknownDriver = errors.New("storage: unknown driver")

// Option configures a Store.
type Option func(*options)

type options struct {
	log zerolog.Logger
}

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

func applyOptions(opts []Option) options {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open returns the Store for driver at path.
func Open(driver, path string, opts ...Option) (Store, error) {
	switch driver {
	case DriverJSON, "":
		return NewJSONStore(path, opts...), nil
	case DriverYAML:
		return NewYAMLStore(path, opts...), nil
	case DriverSQLite:
		return NewSQLiteStore(path, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
