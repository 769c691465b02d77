// Package cache is the application-facing door to the storage layer:
// it resolves the configured backend, opens the database, and
// namespaces every key to one mail folder. Record contents pass through
// untouched; serializing them is the caller's business.
package cache

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"hoard/internal/config"
	"hoard/internal/logging"
	"hoard/internal/store"
	_ "hoard/internal/store/backends"
)

var log = logging.For("cache")

// Cache wraps one open store, scoped to a single folder.
type Cache struct {
	st store.Store

	// prefix is fingerprint(folder) + delimiter, prepended to every
	// key. Fingerprinting keeps composed keys short and uniform no
	// matter how long the folder path is.
	prefix []byte
}

// Open validates cfg, opens the configured backend, and returns a cache
// scoped to folder. An unavailable store is an error here; callers that
// can operate without a cache decide that for themselves.
func Open(cfg *config.Config, folder string) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if folder == "" {
		return nil, fmt.Errorf("cache: folder must not be empty")
	}

	st, err := store.Open(cfg.Store.Backend, config.ExpandHome(cfg.Store.Path))
	if err != nil {
		return nil, err
	}
	log.Debug("cache opened", "backend", cfg.Store.Backend, "folder", folder)

	prefix := fingerprint(folder)
	prefix = append(prefix, cfg.Cache.FieldDelimiter[0])
	return &Cache{st: st, prefix: prefix}, nil
}

// Get returns the cached value for key, or (nil, nil) when absent.
func (c *Cache) Get(key []byte) ([]byte, error) {
	return c.st.Get(c.compose(key))
}

// Set inserts or replaces the cached value for key.
func (c *Cache) Set(key, value []byte) error {
	return c.st.Set(c.compose(key), value)
}

// Delete removes the cached value for key. Returns store.ErrNotFound
// when there is nothing to remove.
func (c *Cache) Delete(key []byte) error {
	return c.st.Delete(c.compose(key))
}

// Close releases the underlying store. Safe to call more than once.
func (c *Cache) Close() error {
	return c.st.Close()
}

// Version reports the active backend's engine version.
func (c *Cache) Version() string {
	return c.st.Version()
}

func (c *Cache) compose(key []byte) []byte {
	out := make([]byte, 0, len(c.prefix)+len(key))
	out = append(out, c.prefix...)
	return append(out, key...)
}

// fingerprint derives a fixed-width hex tag from the folder path.
func fingerprint(folder string) []byte {
	sum := blake2b.Sum256([]byte(folder))
	out := make([]byte, hex.EncodedLen(16))
	hex.Encode(out, sum[:16])
	return out
}
