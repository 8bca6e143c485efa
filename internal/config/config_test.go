package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Book.PageSize != 1 {
		t.Errorf("default page size = %d, want 1", cfg.Book.PageSize)
	}
	if cfg.Display.Format != "plain" {
		t.Errorf("default format = %q, want %q", cfg.Display.Format, "plain")
	}
	if cfg.Display.Plain {
		t.Error("default plain = true, want false")
	}
	if cfg.Clock.Today != "" {
		t.Errorf("default today = %q, want empty", cfg.Clock.Today)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
book:
  page_size: 5
display:
  format: json
  plain: true
clock:
  today: 2024-02-01
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Book.PageSize != 5 {
		t.Errorf("page size = %d, want 5", cfg.Book.PageSize)
	}
	if cfg.Display.Format != "json" {
		t.Errorf("format = %q, want %q", cfg.Display.Format, "json")
	}
	if !cfg.Display.Plain {
		t.Error("plain = false, want true")
	}
	if cfg.Clock.Today != "2024-02-01" {
		t.Errorf("today = %q, want %q", cfg.Clock.Today, "2024-02-01")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "{{invalid yaml")

	if _, err := Load(path); err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
}

func TestLoad_UnknownField(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
book:
  pagesize: 3
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() should return error for unknown field 'pagesize'")
	}
}

func TestLoad_CommentOnlyFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "# just a comment\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(comment-only) error = %v", err)
	}
	if want := DefaultConfig(); *cfg != want {
		t.Errorf("Load(comment-only) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(empty) error = %v", err)
	}
	if want := DefaultConfig(); *cfg != want {
		t.Errorf("Load(empty) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_Priority(t *testing.T) {
	// Given: user config sets page size and format, project config overrides format
	userCfg := writeConfig(t, t.TempDir(), `
book:
  page_size: 4
display:
  format: yaml
`)
	projectCfg := writeConfig(t, t.TempDir(), `
display:
  format: json
`)

	// When: loading both layers
	cfg, err := LoadLayered(userCfg, projectCfg)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}

	// Then: later layers win field by field
	if cfg.Book.PageSize != 4 {
		t.Errorf("page size = %d, want 4 (from user layer)", cfg.Book.PageSize)
	}
	if cfg.Display.Format != "json" {
		t.Errorf("format = %q, want %q (from project layer)", cfg.Display.Format, "json")
	}
	if cfg.Display.Plain {
		t.Error("plain = true, want default false")
	}
}

func TestLoadLayered_AllMissing(t *testing.T) {
	cfg, err := LoadLayered("/no/user.yaml", "/no/project.yaml")
	if err != nil {
		t.Fatalf("LoadLayered(all missing) error = %v", err)
	}
	if want := DefaultConfig(); *cfg != want {
		t.Errorf("got %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_BadLayer(t *testing.T) {
	good := writeConfig(t, t.TempDir(), "book:\n  page_size: 2\n")
	bad := writeConfig(t, t.TempDir(), "clock:\n  tomorrow: yes\n")

	if _, err := LoadLayered(good, bad); err == nil {
		t.Fatal("LoadLayered() should fail on an unknown field in any layer")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name: "CONTACTS_PAGE_SIZE overrides page size",
			envs: map[string]string{"CONTACTS_PAGE_SIZE": "7"},
			check: func(t *testing.T, c Config) {
				if c.Book.PageSize != 7 {
					t.Errorf("page size = %d, want 7", c.Book.PageSize)
				}
			},
		},
		{
			name: "CONTACTS_FORMAT overrides format",
			envs: map[string]string{"CONTACTS_FORMAT": "yaml"},
			check: func(t *testing.T, c Config) {
				if c.Display.Format != "yaml" {
					t.Errorf("format = %q, want %q", c.Display.Format, "yaml")
				}
			},
		},
		{
			name: "CONTACTS_TODAY overrides today",
			envs: map[string]string{"CONTACTS_TODAY": "2002-1-31"},
			check: func(t *testing.T, c Config) {
				if c.Clock.Today != "2002-1-31" {
					t.Errorf("today = %q, want %q", c.Clock.Today, "2002-1-31")
				}
			},
		},
		{
			name:    "invalid CONTACTS_PAGE_SIZE returns error",
			envs:    map[string]string{"CONTACTS_PAGE_SIZE": "many"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			err := cfg.ApplyEnv()

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnv() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:    "zero page size",
			modify:  func(c *Config) { c.Book.PageSize = 0 },
			wantErr: true,
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Display.Format = "xml" },
			wantErr: true,
		},
		{
			name:   "empty format",
			modify: func(c *Config) { c.Display.Format = "" },
		},
		{
			name:   "valid today",
			modify: func(c *Config) { c.Clock.Today = "2024-2-29" },
		},
		{
			name:    "impossible today",
			modify:  func(c *Config) { c.Clock.Today = "2023-2-29" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNow(t *testing.T) {
	t.Run("fixed date", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Clock.Today = "2024-02-01"

		now, err := cfg.Now()
		if err != nil {
			t.Fatalf("Now() error = %v", err)
		}
		y, m, d := now().Date()
		if y != 2024 || m != time.February || d != 1 {
			t.Errorf("now() = %d-%d-%d, want 2024-2-1", y, m, d)
		}
	})

	t.Run("system clock", func(t *testing.T) {
		cfg := DefaultConfig()

		now, err := cfg.Now()
		if err != nil {
			t.Fatalf("Now() error = %v", err)
		}
		if d := time.Since(now()); d < 0 || d > time.Minute {
			t.Errorf("now() is %v away from the system clock", d)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Clock.Today = "soon"

		if _, err := cfg.Now(); err == nil {
			t.Fatal("Now() should fail for an invalid date")
		}
	})
}
