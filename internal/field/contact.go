package field

import (
	"time"
)

// PhoneLength is the number of digits a phone number must have.
const PhoneLength = 10

// BirthdayLayout is the accepted birthday layout: four-digit year, then
// month and day with one or two digits each. Year 0000 is rejected.
const BirthdayLayout = "2006-1-2"

// Name is a contact name. Every value is accepted.
type Name struct {
	Field[string]
}

// NewName wraps raw as a Name.
func NewName(raw string) Name {
	f, _ := New[string]("name", raw, nil)
	return Name{Field: f}
}

// Phone is a phone number of exactly PhoneLength decimal digits.
type Phone struct {
	Field[string]
}

// IsValidPhone reports whether v consists of exactly PhoneLength ASCII digits.
func IsValidPhone(v string) bool {
	if len(v) != PhoneLength {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}

// NewPhone validates raw and wraps it as a Phone.
func NewPhone(raw string) (Phone, error) {
	f, err := New("phone", raw, IsValidPhone)
	if err != nil {
		return Phone{}, err
	}
	return Phone{Field: f}, nil
}

// Set replaces the number after checking IsValidPhone. A zero Phone is
// checked the same way as one built by NewPhone.
func (p *Phone) Set(v string) error {
	if !IsValidPhone(v) {
		return &ValidationError{Kind: "phone", Value: v}
	}
	p.Field = Field[string]{kind: "phone", value: v, valid: IsValidPhone}
	return nil
}

// Birthday is an optional calendar date kept in its raw textual form.
// The zero value holds no date, like NoBirthday.
type Birthday struct {
	Field[*string]
}

// IsValidBirthday reports whether v is absent or a real calendar date in
// BirthdayLayout. Impossible dates such as 2001-2-29 are rejected.
func IsValidBirthday(v *string) bool {
	if v == nil {
		return true
	}
	t, err := time.Parse(BirthdayLayout, *v)
	return err == nil && t.Year() >= 1
}

// NewBirthday validates raw and wraps it as a known Birthday.
func NewBirthday(raw string) (Birthday, error) {
	f, err := New("birthday", &raw, IsValidBirthday)
	if err != nil {
		return Birthday{}, err
	}
	return Birthday{Field: f}, nil
}

// Set replaces the birthday after checking IsValidBirthday. A nil v clears
// it. The text is copied, so later writes through v are not seen.
func (b *Birthday) Set(v *string) error {
	if !IsValidBirthday(v) {
		return &ValidationError{Kind: "birthday", Value: render(v)}
	}
	var stored *string
	if v != nil {
		raw := *v
		stored = &raw
	}
	b.Field = Field[*string]{kind: "birthday", value: stored, valid: IsValidBirthday}
	return nil
}

// NoBirthday returns a Birthday with no known date.
func NoBirthday() Birthday {
	f, _ := New[*string]("birthday", nil, IsValidBirthday)
	return Birthday{Field: f}
}

// Known reports whether a birthday date is set.
func (b Birthday) Known() bool {
	return b.Value() != nil
}

// Raw returns the birthday text and whether it is known.
func (b Birthday) Raw() (string, bool) {
	v := b.Value()
	if v == nil {
		return "", false
	}
	return *v, true
}

// Date returns the parsed month and day of a known birthday.
func (b Birthday) Date() (time.Month, int, bool) {
	raw, ok := b.Raw()
	if !ok {
		return 0, 0, false
	}
	t, err := time.Parse(BirthdayLayout, raw)
	if err != nil {
		return 0, 0, false
	}
	return t.Month(), t.Day(), true
}

// String renders the birthday text, or "None" when unknown.
func (b Birthday) String() string {
	raw, ok := b.Raw()
	if !ok {
		return "None"
	}
	return raw
}
