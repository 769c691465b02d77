// Package memory implements the store contract on an in-process LRU.
// Nothing is persisted; callers use it when no database path is
// available or to run without touching the filesystem (tests, one-shot
// invocations). The path argument to Open is ignored.
package memory

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"hoard/internal/store"
)

// capacity bounds the number of resident entries. Eviction order is the
// LRU's; evicted entries read back as "not found", which is exactly the
// cache-miss contract.
const capacity = 4096

// maxDatum keeps oversized-input behavior uniform with the file-backed
// backends even though the map itself has no hard limit.
const maxDatum = 1 << 30

func init() {
	store.Register(store.Backend{
		Name: "memory",
		Open: func(path string) (store.Store, error) {
			s, err := Open(path)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		Version: Version,
	})
}

// Store implements store.Store using hashicorp's generic LRU.
type Store struct {
	cache  *lru.Cache[string, []byte]
	closed bool
}

// Open creates an empty in-memory store. path is accepted for contract
// symmetry and ignored.
func Open(path string) (*Store, error) {
	cache, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache}, nil
}

func (s *Store) Get(key []byte) ([]byte, error) {
	if s.closed {
		return nil, store.ErrClosed
	}
	if len(key) > maxDatum {
		return nil, store.ErrOversized
	}

	v, ok := s.cache.Get(string(key))
	if !ok {
		return nil, nil
	}
	val := make([]byte, len(v))
	copy(val, v)
	return val, nil
}

func (s *Store) Set(key, value []byte) error {
	if s.closed {
		return store.ErrClosed
	}
	if len(key) > maxDatum || len(value) > maxDatum {
		return store.ErrOversized
	}

	v := make([]byte, len(value))
	copy(v, value)
	s.cache.Add(string(key), v)
	return nil
}

func (s *Store) Delete(key []byte) error {
	if s.closed {
		return store.ErrClosed
	}
	if len(key) > maxDatum {
		return store.ErrOversized
	}

	if !s.cache.Remove(string(key)) {
		return store.ErrNotFound
	}
	return nil
}

// Close drops all entries. Calling Close again is a no-op.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cache.Purge()
	return nil
}

func (s *Store) Version() string {
	return Version()
}

// Version reports the LRU library version compiled into this binary.
func Version() string {
	return store.EngineVersion("github.com/hashicorp/golang-lru/v2", "lru")
}
