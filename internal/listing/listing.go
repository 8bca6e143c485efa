// Package listing renders address book records as text, JSON, or YAML.
package listing

import (
	"fmt"
	"io"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/contacts/internal/record"
)

// Format selects a listing encoding.
type Format string

const (
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat converts s to a Format. The empty string means FormatPlain.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatPlain, nil
	case FormatPlain, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("listing: unknown format %q (want plain, json or yaml)", s)
	}
}

// Line renders one record in the address book listing form, e.g.
//
//	1 contact = Name: John; Phones: 1234567890, 5555555555; Birthday: 2002-1-31
func Line(index int, r *record.Record) string {
	return fmt.Sprintf("%d contact = Name: %s; Phones: %s; Birthday: %s",
		index, r.Name(), strings.Join(r.PhoneValues(), ", "), r.Birthday())
}

// Entry is the structured form of a record.
type Entry struct {
	Name           string   `json:"name" yaml:"name"`
	Phones         []string `json:"phones" yaml:"phones"`
	Birthday       *string  `json:"birthday,omitempty" yaml:"birthday,omitempty"`
	DaysToBirthday *int     `json:"days_to_birthday,omitempty" yaml:"days_to_birthday,omitempty"`
}

// NewEntry snapshots r, counting birthday days from today.
func NewEntry(r *record.Record, today time.Time) Entry {
	e := Entry{
		Name:   r.Name().Value(),
		Phones: r.PhoneValues(),
	}
	if raw, ok := r.Birthday().Raw(); ok {
		e.Birthday = &raw
	}
	if days, ok := r.DaysToBirthdayFrom(today); ok {
		e.DaysToBirthday = &days
	}
	return e
}

// Write renders records to w in format f. Plain output is numbered from 1.
func Write(w io.Writer, records []*record.Record, f Format, today time.Time) error {
	switch f {
	case FormatPlain, "":
		for i, r := range records {
			if _, err := fmt.Fprintln(w, Line(i+1, r)); err != nil {
				return fmt.Errorf("listing: writing: %w", err)
			}
		}
		return nil

	case FormatJSON:
		enc := gojson.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries(records, today)); err != nil {
			return fmt.Errorf("listing: encoding json: %w", err)
		}
		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries(records, today)); err != nil {
			return fmt.Errorf("listing: encoding yaml: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("listing: unknown format %q", f)
	}
}

func entries(records []*record.Record, today time.Time) []Entry {
	out := make([]Entry, len(records))
	for i, r := range records {
		out[i] = NewEntry(r, today)
	}
	return out
}
