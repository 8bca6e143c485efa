// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the layout accepted for clock.today.
const DateLayout = "2006-1-2"

// Config holds all contacts configuration.
type Config struct {
	Book    Book    `yaml:"book"`
	Display Display `yaml:"display"`
	Clock   Clock   `yaml:"clock"`
}

// Book holds address book settings.
type Book struct {
	PageSize int `yaml:"page_size"` // Records per iteration pass
}

// Display holds output settings.
type Display struct {
	Format string `yaml:"format"` // "plain" | "json" | "yaml"
	Plain  bool   `yaml:"plain"`  // Never start the TUI
}

// Clock holds date settings.
type Clock struct {
	Today string `yaml:"today"` // Fixed current date (YYYY-MM-DD); empty uses the system clock
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Book: Book{
			PageSize: 1,
		},
		Display: Display{
			Format: "plain",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Book.PageSize < 1 {
		return fmt.Errorf("config: book.page_size must be at least 1, got %d", c.Book.PageSize)
	}
	switch c.Display.Format {
	case "", "plain", "json", "yaml":
		// valid
	default:
		return fmt.Errorf("config: display.format must be \"plain\", \"json\" or \"yaml\", got %q", c.Display.Format)
	}
	if c.Clock.Today != "" {
		if _, err := time.Parse(DateLayout, c.Clock.Today); err != nil {
			return fmt.Errorf("config: clock.today %q is not a date: %w", c.Clock.Today, err)
		}
	}
	return nil
}

// Now returns the clock configured by clock.today, or time.Now when unset.
func (c *Config) Now() (func() time.Time, error) {
	if c.Clock.Today == "" {
		return time.Now, nil
	}
	today, err := time.ParseInLocation(DateLayout, c.Clock.Today, time.Local)
	if err != nil {
		return nil, fmt.Errorf("config: clock.today %q is not a date: %w", c.Clock.Today, err)
	}
	return func() time.Time { return today }, nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CONTACTS_PAGE_SIZE, CONTACTS_FORMAT, CONTACTS_TODAY.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CONTACTS_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid CONTACTS_PAGE_SIZE %q: %w", v, err)
		}
		c.Book.PageSize = n
	}
	if v := os.Getenv("CONTACTS_FORMAT"); v != "" {
		c.Display.Format = v
	}
	if v := os.Getenv("CONTACTS_TODAY"); v != "" {
		c.Clock.Today = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Book    *rawBook    `yaml:"book"`
	Display *rawDisplay `yaml:"display"`
	Clock   *rawClock   `yaml:"clock"`
}

type rawBook struct {
	PageSize *int `yaml:"page_size"`
}

type rawDisplay struct {
	Format *string `yaml:"format"`
	Plain  *bool   `yaml:"plain"`
}

type rawClock struct {
	Today *string `yaml:"today"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Book != nil && layer.Book.PageSize != nil {
		c.Book.PageSize = *layer.Book.PageSize
	}
	if layer.Display != nil {
		if layer.Display.Format != nil {
			c.Display.Format = *layer.Display.Format
		}
		if layer.Display.Plain != nil {
			c.Display.Plain = *layer.Display.Plain
		}
	}
	if layer.Clock != nil && layer.Clock.Today != nil {
		c.Clock.Today = *layer.Clock.Today
	}
}
