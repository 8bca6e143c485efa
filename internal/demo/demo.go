// Package demo runs the sample address book session: two contacts, a few
// phone edits, a delete by the wrong name, and the final listing.
package demo

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/smileynet/contacts/internal/book"
	"github.com/smileynet/contacts/internal/listing"
	"github.com/smileynet/contacts/internal/record"
)

// Options configures a demo run.
type Options struct {
	Now      func() time.Time // Clock for birthday countdowns (default: time.Now).
	PageSize int              // Records listed (default: book.DefaultPageSize).
	Format   listing.Format   // Listing encoding (default: plain).
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.PageSize == 0 {
		o.PageSize = book.DefaultPageSize
	}
	if o.Format == "" {
		o.Format = listing.FormatPlain
	}
	return o
}

// Run plays the demo session, writing diagnostics and the listing to w.
func Run(w io.Writer, opts Options) error {
	opts = opts.withDefaults()

	b, err := build(w, opts)
	if err != nil {
		return err
	}

	if opts.Format == listing.FormatPlain {
		_, _ = fmt.Fprintln(w, "Address Book")
	}
	return listing.Write(w, slices.Collect(b.Iter()), opts.Format, opts.Now())
}

// Book builds the demo address book without printing the listing.
// Diagnostics raised while building it still go to w.
func Book(w io.Writer, opts Options) (*book.Book, error) {
	return build(w, opts.withDefaults())
}

func build(w io.Writer, opts Options) (*book.Book, error) {
	recOpts := []record.Option{record.WithOutput(w), record.WithClock(opts.Now)}

	john, err := record.New("John", append(recOpts, record.WithBirthday("2002-1-31"))...)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	john.AddPhone("1234567890")
	john.AddPhone("5555555555")
	if days, ok := john.DaysToBirthday(); ok {
		_, _ = fmt.Fprintf(w, "Left %d days to John's birthday\n", days)
	}

	if _, err := john.EditPhone("5555555555", "7d777777777"); err != nil {
		if !errors.Is(err, record.ErrNotFound) {
			return nil, fmt.Errorf("demo: %w", err)
		}
		_, _ = fmt.Fprintln(w, err)
	}

	jane, err := record.New("Jane", recOpts...)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	jane.AddPhone("9876543210")
	jane.AddPhone("9876f43210")

	b := book.New(book.WithOutput(w), book.WithPageSize(opts.PageSize))
	b.AddRecord(john)
	b.AddRecord(jane)

	// Lookup is case-sensitive, so this reports a miss and keeps Jane.
	b.Delete("jane")

	return b, nil
}
