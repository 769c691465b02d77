// Package sqlite implements the store contract on SQLite via the pure-Go
// modernc.org driver. Entries live in a single kv table keyed by BLOB, so
// the binary-key semantics match the other backends exactly.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"hoard/internal/logging"
	"hoard/internal/store"
)

var log = logging.For("store.sqlite")

// maxDatum mirrors SQLITE_MAX_LENGTH, the engine's default bound on any
// single BLOB. Longer keys or values are rejected before the driver
// sees them.
const maxDatum = 1_000_000_000

const schemaSQL = `CREATE TABLE IF NOT EXISTS kv (
    key   BLOB PRIMARY KEY,
    value BLOB NOT NULL
) WITHOUT ROWID;`

func init() {
	store.Register(store.Backend{
		Name: "sqlite",
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

// Store implements store.Store using database/sql over modernc.org/sqlite.
type Store struct {
	db     *sql.DB
	closed bool
}

// Open creates or opens a SQLite database at the given path, falling
// back to a read-only connection when the file or its directory is not
// writable.
func Open(path string) (*Store, error) {
	db, rwErr := openMode(path, false)
	if rwErr != nil {
		db, err := openMode(path, true)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite db: %w", rwErr)
		}
		log.Debug("read-write open failed, using read-only", "path", path, "error", rwErr)
		return &Store{db: db}, nil
	}
	return &Store{db: db}, nil
}

// openMode opens one connection and proves it usable: sql.Open alone is
// lazy, so the schema statement (or a ping) is what actually touches
// the file.
func openMode(path string, readOnly bool) (*sql.DB, error) {
	dsn := "file:" + path
	if readOnly {
		dsn += "?mode=ro"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A second connection would race the first on the schema and on
	// file locks; the cache contract is one logical owner per handle.
	db.SetMaxOpenConns(1)

	if readOnly {
		err = db.Ping()
	} else {
		_, err = db.Exec(schemaSQL)
	}
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (s *Store) Get(key []byte) ([]byte, error) {
	if s.closed {
		return nil, store.ErrClosed
	}
	if len(key) > maxDatum {
		return nil, store.ErrOversized
	}

	var val []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if val == nil {
		// A zero-length BLOB scans as nil. The column is NOT NULL, so
		// a returned row with a nil scan is an empty value, not a
		// miss; nil is reserved for "key absent".
		val = []byte{}
	}
	return val, nil
}

func (s *Store) Set(key, value []byte) error {
	if s.closed {
		return store.ErrClosed
	}
	if len(key) > maxDatum || len(value) > maxDatum {
		return store.ErrOversized
	}

	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *Store) Delete(key []byte) error {
	if s.closed {
		return store.ErrClosed
	}
	if len(key) > maxDatum {
		return store.ErrOversized
	}

	res, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
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

// Version reports the sqlite driver version compiled into this binary.
func Version() string {
	return store.EngineVersion("modernc.org/sqlite", "sqlite")
}
