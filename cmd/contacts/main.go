package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/smileynet/contacts/internal/config"
	"github.com/smileynet/contacts/internal/demo"
	"github.com/smileynet/contacts/internal/field"
	"github.com/smileynet/contacts/internal/listing"
	"github.com/smileynet/contacts/internal/record"
	"github.com/smileynet/contacts/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for contacts.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Demo    DemoCmd          `cmd:"" help:"Run the sample address book session."`
	Browse  BrowseCmd        `cmd:"" help:"Page through the sample address book."`
	Check   CheckCmd         `cmd:"" help:"Validate a contact field."`
	Days    DaysCmd          `cmd:"" help:"Count days until the next birthday."`
}

// loadConfig loads the file named by CONTACTS_CONFIG, or else layered config
// from user and project paths, then applies env overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := os.Getenv("CONTACTS_CONFIG"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadLayered(
			os.ExpandEnv("$HOME/.config/contacts/config.yaml"),
			".contacts/config.yaml",
		)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overrides holds flag values that take precedence over config.
// Zero values leave the config untouched.
type overrides struct {
	pageSize int
	format   string
	today    string
}

// apply copies set flag values onto cfg and validates the result.
func (o overrides) apply(cfg *config.Config) error {
	if o.pageSize != 0 {
		cfg.Book.PageSize = o.pageSize
	}
	if o.format != "" {
		cfg.Display.Format = o.format
	}
	if o.today != "" {
		cfg.Clock.Today = o.today
	}
	return cfg.Validate()
}

// DemoCmd plays the sample session and prints the bounded listing.
type DemoCmd struct {
	Format   string `help:"Listing format (plain, json, yaml)."`
	PageSize int    `help:"Records listed by the book's iteration."`
	Today    string `help:"Fixed current date (YYYY-MM-DD)."`
}

// Run executes the demo command.
func (d *DemoCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	return d.run(os.Stdout, cfg)
}

// run executes the demo against cfg, enabling testable wiring.
func (d *DemoCmd) run(w io.Writer, cfg *config.Config) error {
	o := overrides{pageSize: d.PageSize, format: d.Format, today: d.Today}
	if err := o.apply(cfg); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	now, err := cfg.Now()
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	format, err := listing.ParseFormat(cfg.Display.Format)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	return demo.Run(w, demo.Options{
		Now:      now,
		PageSize: cfg.Book.PageSize,
		Format:   format,
	})
}

// BrowseCmd opens the pager over the sample address book.
type BrowseCmd struct {
	PageSize int    `help:"Records per page."`
	Today    string `help:"Fixed current date (YYYY-MM-DD)."`
	NoTUI    bool   `help:"Force plain text output even if stdout is a TTY." default:"false"`
}

// Run executes the browse command.
func (b *BrowseCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return b.run(ctx, os.Stdout, cfg)
}

// run builds the sample book and shows it, enabling testable wiring.
func (b *BrowseCmd) run(ctx context.Context, w io.Writer, cfg *config.Config) error {
	o := overrides{pageSize: b.PageSize, today: b.Today}
	if err := o.apply(cfg); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	now, err := cfg.Now()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	book, err := demo.Book(w, demo.Options{Now: now, PageSize: cfg.Book.PageSize})
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	display := tui.NewDisplay(tui.DisplayOptions{
		Writer:     w,
		ForcePlain: b.NoTUI || cfg.Display.Plain,
		Now:        now,
	})
	return display.Show(ctx, book)
}

// CheckCmd groups the field validation commands.
type CheckCmd struct {
	Phone    CheckPhoneCmd    `cmd:"" help:"Validate a phone number (10 digits)."`
	Birthday CheckBirthdayCmd `cmd:"" help:"Validate a birthday (YYYY-M-D)."`
}

// CheckPhoneCmd validates a phone number.
type CheckPhoneCmd struct {
	Number string `arg:"" help:"Phone number to validate."`
}

// Run executes the phone check.
func (c *CheckPhoneCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *CheckPhoneCmd) run(w io.Writer) error {
	p, err := field.NewPhone(c.Number)
	if err != nil {
		return fmt.Errorf("check phone: %w", err)
	}
	_, _ = fmt.Fprintf(w, "ok: %s\n", p)
	return nil
}

// CheckBirthdayCmd validates a birthday date.
type CheckBirthdayCmd struct {
	Date string `arg:"" help:"Birthday to validate."`
}

// Run executes the birthday check.
func (c *CheckBirthdayCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *CheckBirthdayCmd) run(w io.Writer) error {
	b, err := field.NewBirthday(c.Date)
	if err != nil {
		return fmt.Errorf("check birthday: %w", err)
	}
	_, _ = fmt.Fprintf(w, "ok: %s\n", b)
	return nil
}

// DaysCmd prints the days remaining until the next occurrence of a birthday.
type DaysCmd struct {
	Birthday string `arg:"" help:"Birthday (YYYY-M-D)."`
	Today    string `help:"Fixed current date (YYYY-MM-DD)."`
}

// Run executes the days command.
func (d *DaysCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("days: %w", err)
	}
	return d.run(os.Stdout, cfg)
}

func (d *DaysCmd) run(w io.Writer, cfg *config.Config) error {
	if err := (overrides{today: d.Today}).apply(cfg); err != nil {
		return fmt.Errorf("days: %w", err)
	}
	now, err := cfg.Now()
	if err != nil {
		return fmt.Errorf("days: %w", err)
	}

	r, err := record.New("", record.WithBirthday(d.Birthday), record.WithClock(now))
	if err != nil {
		return fmt.Errorf("days: %w", err)
	}
	days, _ := r.DaysToBirthday()
	_, _ = fmt.Fprintf(w, "%d\n", days)
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitInvalid = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, field.ErrValidation) {
		return exitInvalid
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("An in-memory contact book with validated fields."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
