// Package record models a single contact: a name, an optional birthday,
// and an ordered list of phone numbers.
package record

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/smileynet/contacts/internal/field"
)

// ErrNotFound is returned by EditPhone when the old number is not on the record.
var ErrNotFound = errors.New("record: phone not found")

// Record is one contact entry. Name and birthday are fixed at construction;
// phones may be added, edited, and removed.
type Record struct {
	name     field.Name
	birthday field.Birthday
	phones   []field.Phone
	now      func() time.Time
	w        io.Writer
}

// Option configures a Record.
type Option func(*options)

type options struct {
	birthday *string
	now      func() time.Time
	w        io.Writer
}

// WithBirthday sets the record's birthday. A malformed value makes New fail.
func WithBirthday(raw string) Option {
	return func(o *options) {
		o.birthday = &raw
	}
}

// WithClock sets the clock used by DaysToBirthday (default: time.Now).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithOutput sets where diagnostics for rejected phones are written
// (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.w = w
	}
}

// New creates a Record for name. Only an invalid birthday can fail; the
// *field.ValidationError is returned to the caller unchanged.
func New(name string, opts ...Option) (*Record, error) {
	o := options{now: time.Now, w: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	birthday := field.NoBirthday()
	if o.birthday != nil {
		b, err := field.NewBirthday(*o.birthday)
		if err != nil {
			return nil, err
		}
		birthday = b
	}

	return &Record{
		name:     field.NewName(name),
		birthday: birthday,
		now:      o.now,
		w:        o.w,
	}, nil
}

// Name returns the contact name.
func (r *Record) Name() field.Name {
	return r.name
}

// Birthday returns the contact birthday, which may be unknown.
func (r *Record) Birthday() field.Birthday {
	return r.birthday
}

// Phones returns a copy of the record's phones in order.
func (r *Record) Phones() []field.Phone {
	return append([]field.Phone(nil), r.phones...)
}

// PhoneValues returns the raw phone strings in order.
func (r *Record) PhoneValues() []string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.Value()
	}
	return values
}

// AddPhone appends raw if it is a valid phone. An invalid number is reported
// on the diagnostics writer and skipped.
func (r *Record) AddPhone(raw string) {
	p, err := field.NewPhone(raw)
	if err != nil {
		_, _ = fmt.Fprintf(r.w, "Phone can not be added %s\n", raw)
		return
	}
	r.phones = append(r.phones, p)
}

// RemovePhone removes the first phone equal to raw. Unknown numbers are ignored.
func (r *Record) RemovePhone(raw string) {
	i := r.indexOf(raw)
	if i < 0 {
		return
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
}

// EditPhone replaces the first phone equal to oldRaw with newRaw.
// It reports false without error when newRaw is invalid (the record is left
// unchanged and a diagnostic is written), and returns ErrNotFound when
// oldRaw is not on the record.
func (r *Record) EditPhone(oldRaw, newRaw string) (bool, error) {
	i := r.indexOf(oldRaw)
	if i < 0 {
		return false, fmt.Errorf("%w: %s", ErrNotFound, oldRaw)
	}

	p, err := field.NewPhone(newRaw)
	if err != nil {
		_, _ = fmt.Fprintf(r.w, "Phone %s can not be replaced by %s\n", oldRaw, newRaw)
		return false, nil
	}
	r.phones[i] = p
	return true, nil
}

// FindPhone returns the first phone equal to raw.
func (r *Record) FindPhone(raw string) (field.Phone, bool) {
	i := r.indexOf(raw)
	if i < 0 {
		return field.Phone{}, false
	}
	return r.phones[i], true
}

func (r *Record) indexOf(raw string) int {
	for i, p := range r.phones {
		if p.Value() == raw {
			return i
		}
	}
	return -1
}

// DaysToBirthday returns the number of days from today (per the record's
// clock) until the next birthday. ok is false when the birthday is unknown.
func (r *Record) DaysToBirthday() (days int, ok bool) {
	return r.DaysToBirthdayFrom(r.now())
}

// DaysToBirthdayFrom is DaysToBirthday with an explicit current date. Only
// the calendar date of today, in its own location, is used.
func (r *Record) DaysToBirthdayFrom(today time.Time) (days int, ok bool) {
	month, day, ok := r.birthday.Date()
	if !ok {
		return 0, false
	}
	return DaysUntil(today, month, day), true
}

// DaysUntil counts calendar days from today to the next month/day.
// The birthday itself yields 0. A Feb 29 date falls on Feb 28 in years
// without a leap day.
func DaysUntil(today time.Time, month time.Month, day int) int {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	next := occurrence(y, month, day)
	if start.After(next) {
		next = occurrence(y+1, month, day)
	}
	return int(next.Sub(start).Hours() / 24)
}

// occurrence returns midnight UTC of month/day in year.
func occurrence(year int, month time.Month, day int) time.Time {
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
