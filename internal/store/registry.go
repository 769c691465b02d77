package store

import (
	"fmt"
	"sort"
)

// Backend describes one compiled-in storage backend. Descriptors are
// immutable for the process lifetime.
type Backend struct {
	// Name identifies the backend in configuration, e.g. "bolt".
	Name string

	// Open opens or creates a database at path. Backends attempt a
	// read-write open first and fall back to read-only before giving
	// up, so a database owned by another user is still usable.
	Open func(path string) (Store, error)

	// Version reports the engine's version string without opening
	// anything.
	Version func() string
}

var backends = map[string]Backend{}

// Register adds a backend to the registry. Called from the backend
// packages' init functions; registering twice under one name or with an
// incomplete descriptor is a programming error, so it panics.
func Register(b Backend) {
	if b.Name == "" || b.Open == nil || b.Version == nil {
		panic("store: Register called with incomplete backend descriptor")
	}
	if _, dup := backends[b.Name]; dup {
		panic(fmt.Sprintf("store: Register called twice for backend %q", b.Name))
	}
	backends[b.Name] = b
}

// Lookup returns the descriptor for name. A backend that was not
// compiled in surfaces as ErrUnknownBackend here, before any handle
// exists.
func Lookup(name string) (Backend, error) {
	b, ok := backends[name]
	if !ok {
		return Backend{}, fmt.Errorf("%w: %q (compiled in: %v)", ErrUnknownBackend, name, Backends())
	}
	return b, nil
}

// Open opens a database at path using the named backend.
func Open(backend, path string) (Store, error) {
	b, err := Lookup(backend)
	if err != nil {
		return nil, err
	}
	return b.Open(path)
}

// Backends returns the names of all compiled-in backends, sorted.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
