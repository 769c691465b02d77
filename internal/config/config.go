// Package config holds the application's storage and cache settings,
// loaded from a TOML file over defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Backend names accepted in [store].backend. Each must be compiled in
// through the backends package for Open to succeed.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultFieldDelimiter separates the folder fingerprint from the
// record key inside composed cache keys.
const DefaultFieldDelimiter = ":"

type Config struct {
	Store   StoreConfig   `toml:"store"`
	Cache   CacheConfig   `toml:"cache"`
	Logging LoggingConfig `toml:"logging"`

	// delimChanged enforces that the field delimiter is changed at
	// most once per config lifetime; existing databases contain keys
	// composed with the old delimiter, so flipping it twice silently
	// orphans entries.
	delimChanged bool
}

type StoreConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type CacheConfig struct {
	FieldDelimiter string `toml:"field_delimiter"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Defaults returns a Config with sane defaults.
func Defaults() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendBolt,
			Path:    "~/.hoard/cache.db",
		},
		Cache: CacheConfig{
			FieldDelimiter: DefaultFieldDelimiter,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a TOML config file and returns the parsed Config.
// If path is empty, only defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		// Try default location
		path = expandHome("~/.hoard/config.toml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values. It does not consult the backend
// registry; an unregistered backend surfaces from store.Lookup when the
// cache is opened.
func (c *Config) Validate() error {
	if c.Store.Backend == "" {
		return fmt.Errorf("store.backend must not be empty")
	}
	if c.Store.Path == "" && c.Store.Backend != BackendMemory {
		return fmt.Errorf("store.path must not be empty for backend %q", c.Store.Backend)
	}
	if err := validateDelimiter(c.Cache.FieldDelimiter); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not a known format", c.Logging.Format)
	}
	return nil
}

// SetFieldDelimiter changes the cache field delimiter. The delimiter
// may be changed at most once per Config; further changes are rejected.
func (c *Config) SetFieldDelimiter(delim string) error {
	if err := validateDelimiter(delim); err != nil {
		return err
	}
	if delim == c.Cache.FieldDelimiter {
		return nil
	}
	if c.delimChanged {
		return fmt.Errorf("cache.field_delimiter can only be set once")
	}
	c.Cache.FieldDelimiter = delim
	c.delimChanged = true
	return nil
}

// ResetDelimiterGuard re-arms the change-once check. Intended for the
// start of a config lifecycle (and for tests), never mid-run.
func (c *Config) ResetDelimiterGuard() {
	c.delimChanged = false
}

// validateDelimiter requires a single byte that cannot appear in the
// folder fingerprint or collide with path syntax: non-alphanumeric and
// none of - . \ /
func validateDelimiter(delim string) error {
	if len(delim) != 1 {
		return fmt.Errorf("cache.field_delimiter must be exactly one character long")
	}
	b := delim[0]
	alnum := (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
	if alnum || strings.IndexByte(`-.\/`, b) >= 0 {
		return fmt.Errorf(`cache.field_delimiter cannot be alphanumeric or '-.\/'`)
	}
	return nil
}

// ExpandHome resolves a leading ~/ to the user's home directory.
func ExpandHome(path string) string {
	return expandHome(path)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
