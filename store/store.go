// Package store provides the durable key-value tables backing an index.
//
// Each table is a single bbolt file with one records bucket. bbolt serializes
// concurrent writers per file and allows fully concurrent readers, so writes
// within one partition table are serialized while distinct partition tables
// commit in parallel.
package store

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

var bucketRecords = []byte("records")

// Mode selects how a table is opened.
type Mode int

const (
	// ReadWrite opens the table for both reads and writes.
	ReadWrite Mode = iota
	// ReadOnly opens the table for reads; Put fails.
	ReadOnly
)

// StoreError is a durable-storage failure (open/read/write). The underlying
// reason is available via errors.Unwrap.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// approxEntryBytes is a rough per-entry footprint used to pre-size the mmap
// from a caller-supplied entry count hint.
const approxEntryBytes = 64

// lockTimeout bounds the wait for the table's file lock. A read-write handle
// holds the lock exclusively, so contention on the same file must surface as
// a *StoreError instead of an indefinite block.
const lockTimeout = time.Second

// Table is a durable mapping backed by a single bbolt file.
type Table struct {
	db   *bbolt.DB
	path string
	mode Mode

	closeOnce sync.Once
	closeErr  error
}

// Create creates a new empty table at path, pre-sized for sizeHint entries.
// It fails with *StoreError if the file already exists (name collision) or on
// I/O failure.
func Create(path string, sizeHint int) (*Table, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, &StoreError{Op: "create", Path: path, Err: os.ErrExist}
	} else if !os.IsNotExist(err) {
		return nil, &StoreError{Op: "create", Path: path, Err: err}
	}

	opts := &bbolt.Options{Timeout: lockTimeout}
	if sizeHint > 0 {
		opts.InitialMmapSize = sizeHint * approxEntryBytes
	}

	db, err := bbolt.Open(path, 0o600, opts)
	if err != nil {
		return nil, &StoreError{Op: "create", Path: path, Err: err}
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	})
	if err != nil {
		db.Close()
		return nil, &StoreError{Op: "create", Path: path, Err: err}
	}

	return &Table{db: db, path: path, mode: ReadWrite}, nil
}

// Open opens an existing table. It fails with *StoreError if the file is
// missing or not a valid table.
func Open(path string, mode Mode) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &StoreError{Op: "open", Path: path, Err: err}
	}

	opts := &bbolt.Options{ReadOnly: mode == ReadOnly, Timeout: lockTimeout}

	db, err := bbolt.Open(path, 0o600, opts)
	if err != nil {
		return nil, &StoreError{Op: "open", Path: path, Err: err}
	}

	// Format check: a valid table always has its records bucket.
	err = db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketRecords) == nil {
			return fmt.Errorf("missing records bucket")
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, &StoreError{Op: "open", Path: path, Err: err}
	}

	return &Table{db: db, path: path, mode: mode}, nil
}

// Path returns the table's file path.
func (t *Table) Path() string { return t.path }

// Get returns the value for key. ok is false when the key is absent; absence
// is not an error. The returned slice is an owned copy, valid after return.
func (t *Table) Get(key []byte) (value []byte, ok bool, err error) {
	err = t.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketRecords).Get(key)
		if v == nil {
			return nil
		}
		value = make([]byte, len(v))
		copy(value, v)
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, &StoreError{Op: "get", Path: t.path, Err: err}
	}
	return value, ok, nil
}

// Put stores value under key, overwriting any existing value.
func (t *Table) Put(key, value []byte) error {
	err := t.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).Put(key, value)
	})
	if err != nil {
		return &StoreError{Op: "put", Path: t.path, Err: err}
	}
	return nil
}

// Len returns the number of entries in the table.
func (t *Table) Len() (int, error) {
	var n int
	err := t.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketRecords).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, &StoreError{Op: "stat", Path: t.path, Err: err}
	}
	return n, nil
}

// Close releases the underlying file. It is idempotent; every handle obtained
// via Create/Open must be released on all exit paths.
func (t *Table) Close() error {
	t.closeOnce.Do(func() {
		if err := t.db.Close(); err != nil {
			t.closeErr = &StoreError{Op: "close", Path: t.path, Err: err}
		}
	})
	return t.closeErr
}
