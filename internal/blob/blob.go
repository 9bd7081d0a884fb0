// Package blob stores document file bytes in an embedded BadgerDB keyed by
// file id. It backs attachment uploads; the document records in the
// application snapshot own these entries.
package blob

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned by Get when no blob exists for the id.
var ErrNotFound = errors.New("blob not found")

type Store struct {
	db *badger.DB
}

// Open creates (or opens) the blob database in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory creates a non-persistent store for testing.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory blob store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores data under the given file id, replacing any previous value.
func (s *Store) Put(id string, data []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(id), data)
	})
	if err != nil {
		return fmt.Errorf("put blob %s: %w", id, err)
	}
	return nil
}

// Get returns the bytes stored under the file id.
func (s *Store) Get(id string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %s: %w", id, err)
	}
	return data, nil
}

// Delete removes the blob for the file id. Deleting a missing id is not an
// error.
func (s *Store) Delete(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("delete blob %s: %w", id, err)
	}
	return nil
}

// DeleteAll removes every blob.
func (s *Store) DeleteAll() error {
	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("clear blob store: %w", err)
	}
	return nil
}

// DefaultDir returns ~/.config/daily-report/files
func DefaultDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "daily-report", "files"), nil
}
