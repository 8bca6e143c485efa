package demo

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/smileynet/contacts/internal/listing"
)

func fixedNow() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestRun_DefaultTranscript(t *testing.T) {
	// Given: a fixed clock 30 days before John's birthday
	var buf bytes.Buffer

	// When: running the demo with defaults
	if err := Run(&buf, Options{Now: fixedNow}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Then: the transcript matches line for line
	want := strings.Join([]string{
		"Left 30 days to John's birthday",
		"Phone 5555555555 can not be replaced by 7d777777777",
		"Phone can not be added 9876f43210",
		"jane does not exist in address book",
		"Address Book",
		"1 contact = Name: John; Phones: 1234567890, 5555555555; Birthday: 2002-1-31",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("transcript mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRun_LargerPageListsJane(t *testing.T) {
	var buf bytes.Buffer
	if err := Run(&buf, Options{Now: fixedNow, PageSize: 5}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := "2 contact = Name: Jane; Phones: 9876543210; Birthday: None\n"
	if !strings.HasSuffix(buf.String(), want) {
		t.Errorf("output should end with %q, got:\n%s", want, buf.String())
	}
}

func TestRun_JSONOmitsHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := Run(&buf, Options{Now: fixedNow, Format: listing.FormatJSON}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Address Book") {
		t.Error("JSON output should not print the plain header")
	}
	if !strings.Contains(out, `"days_to_birthday": 30`) {
		t.Errorf("JSON output missing days_to_birthday:\n%s", out)
	}
}

func TestBook(t *testing.T) {
	var buf bytes.Buffer
	b, err := Book(&buf, Options{Now: fixedNow, PageSize: 2})
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	if b.PageSize() != 2 {
		t.Errorf("PageSize() = %d, want 2", b.PageSize())
	}
	if strings.Contains(buf.String(), "Address Book") {
		t.Error("Book() should not print the listing")
	}
}
