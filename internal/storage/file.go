package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/addressbook/internal/contact"
)

// codec encodes a document for a FileStore.
type codec interface {
	marshal(doc document) ([]byte, error)
	unmarshal(data []byte, doc *document) error
}

type jsonCodec struct{}

func (jsonCodec) marshal(doc document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func (jsonCodec) unmarshal(data []byte, doc *document) error {
	return json.Unmarshal(data, doc)
}

type yamlCodec struct{}

func (yamlCodec) marshal(doc document) ([]byte, error) {
	return yaml.Marshal(doc)
}

func (yamlCodec) unmarshal(data []byte, doc *document) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Compile-time check: FileStore satisfies Store.
var _ Store = (*FileStore)(nil)

// FileStore persists the book as a single file, rewritten on every Save.
type FileStore struct {
	path  string
	codec codec
	log   zerolog.Logger
}

// NewJSONStore creates a FileStore that writes indented JSON to path.
func NewJSONStore(path string, opts ...Option) *FileStore {
	o := applyOptions(opts)
	return &FileStore{path: path, codec: jsonCodec{}, log: o.log}
}

// NewYAMLStore creates a FileStore that writes YAML to path.
func NewYAMLStore(path string, opts ...Option) *FileStore {
	o := applyOptions(opts)
	return &FileStore{path: path, codec: yamlCodec{}, log: o.log}
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string { return s.path }

// Load reads the book from disk. A missing or empty file yields an empty book.
func (s *FileStore) Load() (*contact.Book, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug().Str("path", s.path).Msg("no saved contacts, starting empty")
			return contact.NewBook(), nil
		}
		return nil, fmt.Errorf("storage: reading %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return contact.NewBook(), nil
	}

	var doc document
	if err := s.codec.unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("storage: parsing %s: %w", s.path, err)
	}
	b, err := restore(doc)
	if err != nil {
		return nil, fmt.Errorf("storage: loading %s: %w", s.path, err)
	}
	s.log.Debug().Str("path", s.path).Int("contacts", b.Len()).Msg("contacts loaded")
	return b, nil
}

// Save writes the whole book to disk, creating the parent directory if needed.
func (s *FileStore) Save(b *contact.Book) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: creating directory: %w", err)
		}
	}

	data, err := s.codec.marshal(snapshot(b))
	if err != nil {
		return fmt.Errorf("storage: marshaling: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("storage: writing %s: %w", s.path, err)
	}
	s.log.Debug().Str("path", s.path).Int("contacts", b.Len()).Msg("contacts saved")
	return nil
}

// Close is a no-op; FileStore holds no open handles between calls.
func (s *FileStore) Close() error { return nil }
