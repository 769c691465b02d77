package config

import (
	"strings"
	"testing"
)

func TestValidate_Valid(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"defaults", func(cfg *Config) {}},
		{"sqlite backend", func(cfg *Config) { cfg.Store.Backend = BackendSQLite }},
		{"memory backend empty path", func(cfg *Config) {
			cfg.Store.Backend = BackendMemory
			cfg.Store.Path = ""
		}},
		{"semicolon delimiter", func(cfg *Config) { cfg.Cache.FieldDelimiter = ";" }},
		{"empty logging fields", func(cfg *Config) { cfg.Logging = LoggingConfig{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mod(cfg)
			if err := cfg.Validate(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mod     func(*Config)
		wantMsg string
	}{
		{"empty backend", func(cfg *Config) { cfg.Store.Backend = "" }, "store.backend"},
		{"empty path for file backend", func(cfg *Config) { cfg.Store.Path = "" }, "store.path"},
		{"empty delimiter", func(cfg *Config) { cfg.Cache.FieldDelimiter = "" }, "one character"},
		{"two-byte delimiter", func(cfg *Config) { cfg.Cache.FieldDelimiter = "::" }, "one character"},
		{"alphanumeric delimiter", func(cfg *Config) { cfg.Cache.FieldDelimiter = "a" }, "alphanumeric"},
		{"digit delimiter", func(cfg *Config) { cfg.Cache.FieldDelimiter = "7" }, "alphanumeric"},
		{"dash delimiter", func(cfg *Config) { cfg.Cache.FieldDelimiter = "-" }, "alphanumeric"},
		{"dot delimiter", func(cfg *Config) { cfg.Cache.FieldDelimiter = "." }, "alphanumeric"},
		{"slash delimiter", func(cfg *Config) { cfg.Cache.FieldDelimiter = "/" }, "alphanumeric"},
		{"backslash delimiter", func(cfg *Config) { cfg.Cache.FieldDelimiter = `\` }, "alphanumeric"},
		{"bad level", func(cfg *Config) { cfg.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(cfg *Config) { cfg.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mod(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestSetFieldDelimiter(t *testing.T) {
	cfg := Defaults()

	// Setting the same value never arms the guard.
	if err := cfg.SetFieldDelimiter(DefaultFieldDelimiter); err != nil {
		t.Fatalf("no-op set: %v", err)
	}

	if err := cfg.SetFieldDelimiter(";"); err != nil {
		t.Fatalf("first change: %v", err)
	}
	if cfg.Cache.FieldDelimiter != ";" {
		t.Fatalf("delimiter not applied, got %q", cfg.Cache.FieldDelimiter)
	}

	// Re-setting the current value is still fine.
	if err := cfg.SetFieldDelimiter(";"); err != nil {
		t.Fatalf("idempotent set: %v", err)
	}

	// A second change is refused.
	err := cfg.SetFieldDelimiter("|")
	if err == nil {
		t.Fatal("second change should be refused")
	}
	if !strings.Contains(err.Error(), "once") {
		t.Errorf("error %q should mention the change-once rule", err)
	}
	if cfg.Cache.FieldDelimiter != ";" {
		t.Errorf("refused change must not alter the value, got %q", cfg.Cache.FieldDelimiter)
	}
}

func TestSetFieldDelimiter_Invalid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.SetFieldDelimiter("ab"); err == nil {
		t.Fatal("expected error for two-character delimiter")
	}
	// A rejected value must not arm the guard.
	if err := cfg.SetFieldDelimiter(";"); err != nil {
		t.Fatalf("valid change after rejected one: %v", err)
	}
}

func TestResetDelimiterGuard(t *testing.T) {
	cfg := Defaults()
	if err := cfg.SetFieldDelimiter(";"); err != nil {
		t.Fatal(err)
	}
	cfg.ResetDelimiterGuard()
	if err := cfg.SetFieldDelimiter("|"); err != nil {
		t.Fatalf("change after reset: %v", err)
	}
	if cfg.Cache.FieldDelimiter != "|" {
		t.Errorf("got %q, want |", cfg.Cache.FieldDelimiter)
	}
}
