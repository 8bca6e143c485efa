// Package tui presents an address book either as a plain text listing or as
// an interactive Bubble Tea pager.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/contacts/internal/book"
	"github.com/smileynet/contacts/internal/listing"
)

// Display shows the contents of an address book.
type Display interface {
	Show(ctx context.Context, b *book.Book) error
}

// DisplayOptions configures display creation.
type DisplayOptions struct {
	Writer     io.Writer        // Output destination (default: os.Stdout).
	Input      io.Reader        // Key input for the TUI (default: os.Stdin).
	ForcePlain bool             // Force plain text even if TTY.
	Now        func() time.Time // Clock for birthday countdowns (default: time.Now).
}

// NewDisplay returns a TUI display when the writer is a TTY, or a plain text
// display otherwise. ForcePlain overrides TTY detection.
func NewDisplay(opts DisplayOptions) Display {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.ForcePlain || !isTTY(opts.Writer) {
		return &PlainDisplay{w: opts.Writer, now: opts.Now}
	}

	return &TUIDisplay{w: opts.Writer, r: opts.Input, now: opts.Now}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainDisplay prints the book's iteration page as numbered listing lines.
type PlainDisplay struct {
	w   io.Writer
	now func() time.Time
}

// Show writes the "Address Book" header and one line per record yielded by
// b.Iter().
func (d *PlainDisplay) Show(ctx context.Context, b *book.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(d.w, "Address Book")
	return listing.Write(d.w, slices.Collect(b.Iter()), listing.FormatPlain, d.now())
}

// TUIDisplay pages through the book using a Bubble Tea terminal UI.
// Falls back to PlainDisplay if the TUI program fails to start.
type TUIDisplay struct {
	w   io.Writer
	r   io.Reader
	now func() time.Time
}

// Show runs the pager until the user quits or ctx is cancelled.
func (d *TUIDisplay) Show(ctx context.Context, b *book.Book) error {
	model := NewModel(b, WithClock(d.now))
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(d.r),
		tea.WithOutput(d.w),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		plain := &PlainDisplay{w: d.w, now: d.now}
		return plain.Show(ctx, b)
	}
	return nil
}
