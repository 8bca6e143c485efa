// Package book implements an in-memory address book keyed by contact name.
package book

import (
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/smileynet/contacts/internal/record"
)

// DefaultPageSize is the number of records a book iterates by default.
const DefaultPageSize = 1

// Book maps contact names to records, remembering insertion order.
// A Book is not safe for concurrent use.
type Book struct {
	records  map[string]*record.Record
	order    []string
	pageSize int
	w        io.Writer
}

// Option configures a Book.
type Option func(*Book)

// WithPageSize sets how many records one iteration pass yields.
// Values below 1 are treated as 1.
func WithPageSize(n int) Option {
	return func(b *Book) {
		b.pageSize = clampPageSize(n)
	}
}

// WithOutput sets where lookup-miss diagnostics are written (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(b *Book) {
		b.w = w
	}
}

// New creates an empty Book.
func New(opts ...Option) *Book {
	b := &Book{
		records:  make(map[string]*record.Record),
		pageSize: DefaultPageSize,
		w:        os.Stdout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddRecord stores r under its name, replacing any record with the same name.
// A replaced record keeps its original position in iteration order.
func (b *Book) AddRecord(r *record.Record) {
	name := r.Name().Value()
	if _, ok := b.records[name]; !ok {
		b.order = append(b.order, name)
	}
	b.records[name] = r
}

// Find returns the record stored under name. A miss is reported on the
// diagnostics writer.
func (b *Book) Find(name string) (*record.Record, bool) {
	r, ok := b.records[name]
	if !ok {
		b.missing(name)
		return nil, false
	}
	return r, true
}

// Delete removes the record stored under name. A miss is reported on the
// diagnostics writer and otherwise ignored.
func (b *Book) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		b.missing(name)
		return
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

func (b *Book) missing(name string) {
	_, _ = fmt.Fprintf(b.w, "%s does not exist in address book\n", name)
}

// Len returns the number of records.
func (b *Book) Len() int {
	return len(b.order)
}

// Names returns the record names in insertion order.
func (b *Book) Names() []string {
	return append([]string(nil), b.order...)
}

// PageSize returns the number of records one iteration pass yields.
func (b *Book) PageSize() int {
	return b.pageSize
}

// Iter yields the first PageSize records in insertion order. Each call to
// the returned sequence starts from the beginning.
func (b *Book) Iter() iter.Seq[*record.Record] {
	return b.IterN(b.pageSize)
}

// IterN yields at most n records in insertion order.
func (b *Book) IterN(n int) iter.Seq[*record.Record] {
	return func(yield func(*record.Record) bool) {
		for _, name := range b.order[:max(0, min(n, len(b.order)))] {
			if !yield(b.records[name]) {
				return
			}
		}
	}
}

// FirstN returns at most n records in insertion order.
func (b *Book) FirstN(n int) []*record.Record {
	n = max(0, min(n, len(b.order)))
	out := make([]*record.Record, n)
	for i, name := range b.order[:n] {
		out[i] = b.records[name]
	}
	return out
}

// Pages returns the number of PageSize pages needed to cover the book.
// An empty book has zero pages.
func (b *Book) Pages() int {
	return (len(b.order) + b.pageSize - 1) / b.pageSize
}

// Page returns the records on page index (zero-based). Page 0 holds the
// same records as Iter. Out-of-range pages are empty.
func (b *Book) Page(index int) []*record.Record {
	start := index * b.pageSize
	if index < 0 || start >= len(b.order) {
		return nil
	}
	end := min(start+b.pageSize, len(b.order))
	out := make([]*record.Record, 0, end-start)
	for _, name := range b.order[start:end] {
		out = append(out, b.records[name])
	}
	return out
}

func clampPageSize(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
