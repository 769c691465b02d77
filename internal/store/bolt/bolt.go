// Package bolt implements the store contract on bbolt (embedded B+ tree,
// single file). This is the default backend for the persistent cache.
package bolt

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"hoard/internal/logging"
	"hoard/internal/store"
)

var log = logging.For("store.bolt")

const (
	// pageSize is fixed so databases stay portable across processes
	// with different os.Getpagesize results.
	pageSize = 4096
	fileMode = 0600
)

// All entries live in a single bucket; the cache keyspace is flat.
var dataBucket = []byte("data")

func init() {
	store.Register(store.Backend{
		Name: "bolt",
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

// Store implements store.Store using bbolt.
type Store struct {
	db       *bolt.DB
	readOnly bool
	closed   bool
}

// Open creates or opens a bbolt database at the given path. A failed
// read-write open is retried read-only, so a database owned by another
// user remains usable for lookups; only when both attempts fail is the
// store reported unavailable.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, fileMode, &bolt.Options{PageSize: pageSize})
	if err != nil {
		rwErr := err
		db, err = bolt.Open(path, fileMode, &bolt.Options{ReadOnly: true})
		if err != nil {
			return nil, fmt.Errorf("opening bolt db: %w", rwErr)
		}
		log.Debug("read-write open failed, using read-only", "path", path, "error", rwErr)
	}

	s := &Store{db: db, readOnly: db.IsReadOnly()}
	if !s.readOnly {
		err := db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(dataBucket)
			return err
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("creating bucket: %w", err)
		}
	}
	return s, nil
}

func (s *Store) Get(key []byte) ([]byte, error) {
	if s.closed {
		return nil, store.ErrClosed
	}
	if len(key) > bolt.MaxKeySize {
		return nil, store.ErrOversized
	}

	var val []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(dataBucket)
		if b == nil {
			return nil
		}
		v := b.Get(key)
		if v != nil {
			// v is only valid inside the transaction; copy out so
			// the caller owns the buffer.
			val = make([]byte, len(v))
			copy(val, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (s *Store) Set(key, value []byte) error {
	if s.closed {
		return store.ErrClosed
	}
	if len(key) > bolt.MaxKeySize || len(value) > bolt.MaxValueSize {
		return store.ErrOversized
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		// Put replaces any existing value for key.
		return tx.Bucket(dataBucket).Put(key, value)
	})
}

func (s *Store) Delete(key []byte) error {
	if s.closed {
		return store.ErrClosed
	}
	if len(key) > bolt.MaxKeySize {
		return store.ErrOversized
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(dataBucket)
		if b == nil || b.Get(key) == nil {
			return store.ErrNotFound
		}
		return b.Delete(key)
	})
}

// Close releases the database. Calling Close again is a no-op.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) Version() string {
	return Version()
}

// Version reports the bbolt version compiled into this binary.
func Version() string {
	return store.EngineVersion("go.etcd.io/bbolt", "bbolt")
}
