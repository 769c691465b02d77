// Package store defines the contract every key-value backend implements
// and the registry the application selects backends through. Keys and
// values are arbitrary byte strings; the on-disk format belongs entirely
// to the backend's engine.
package store

import "errors"

// Store is one open connection to a key-value database. A handle is
// owned by a single logical caller; this layer adds no locking of its
// own, so sharing a handle across goroutines needs external
// synchronization unless the engine documents otherwise.
type Store interface {
	// Get looks up key and returns a copy of the stored value. The
	// returned slice is owned by the caller. A missing key yields
	// (nil, nil); a non-nil error means the engine itself failed.
	Get(key []byte) ([]byte, error)

	// Set inserts or replaces the value for key. The input slices are
	// copied by the engine; the caller keeps ownership of its buffers.
	Set(key, value []byte) error

	// Delete removes the entry for key. Returns ErrNotFound if no such
	// entry exists.
	Delete(key []byte) error

	// Close flushes and releases the underlying connection. Safe to
	// call more than once; every other operation on a closed handle
	// returns ErrClosed.
	Close() error

	// Version reports the engine's version string for diagnostics.
	// Never fails and has no side effects.
	Version() string
}

var (
	// ErrNotFound is returned by Delete when the key has no entry.
	ErrNotFound = errors.New("store: key not found")

	// ErrOversized is returned when a key or value exceeds what the
	// backend's engine can address. The engine is never invoked and
	// the database is unchanged.
	ErrOversized = errors.New("store: key or value exceeds engine limit")

	// ErrClosed is returned by operations on a handle after Close.
	ErrClosed = errors.New("store: handle is closed")

	// ErrUnknownBackend is returned when looking up a backend that was
	// not compiled in.
	ErrUnknownBackend = errors.New("store: unknown backend")
)
