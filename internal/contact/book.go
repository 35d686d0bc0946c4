// Package contact holds the address book domain: field validation,
// contact records and the name-keyed book that owns them.
package contact

import "slices"

// Book maps contact names to records. Iteration follows insertion order;
// replacing an existing name keeps its position.
type Book struct {
	index   map[string]int
	records []*Record
}

// NewBook returns a Book holding the given records in order.
// Records with a name already seen replace the earlier entry.
func NewBook(records ...*Record) *Book {
	b := &Book{index: make(map[string]int, len(records))}
	for _, r := range records {
		_ = b.AddRecord(r)
	}
	return b
}

// AddRecord inserts r under its name, replacing any record already there.
func (b *Book) AddRecord(r *Record) error {
	if r == nil || r.name == "" {
		return ErrEmptyName
	}
	if b.index == nil {
		b.index = make(map[string]int)
	}
	if i, ok := b.index[r.name]; ok {
		b.records[i] = r
		return nil
	}
	b.index[r.name] = len(b.records)
	b.records = append(b.records, r)
	return nil
}

// Find returns the record stored under name.
func (b *Book) Find(name string) (*Record, bool) {
	i, ok := b.index[name]
	if !ok {
		return nil, false
	}
	return b.records[i], true
}

// Delete removes the record stored under name. Missing names are ignored.
func (b *Book) Delete(name string) {
	i, ok := b.index[name]
	if !ok {
		return
	}
	delete(b.index, name)
	b.records = slices.Delete(b.records, i, i+1)
	for j := i; j < len(b.records); j++ {
		b.index[b.records[j].name] = j
	}
}

// Records returns the records in book order.
func (b *Book) Records() []*Record {
	return slices.Clone(b.records)
}

// Len returns the number of records.
func (b *Book) Len() int { return len(b.records) }
