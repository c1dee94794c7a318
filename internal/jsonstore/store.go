// Package jsonstore implements the JSON file backend for shelf. The whole
// database lives in one document per database file; Save rewrites the full
// snapshot.
package jsonstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/dukaforge/shelfdb/pkg/types"
)

// Store implements types.Store over a single JSON document.
type Store struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	db       *types.Database
	path     string
	log      *zap.Logger
}

// NewStore creates a detached JSON store. Call Attach with a Config to load
// or create a database.
func NewStore() *Store {
	return NewStoreWithLogger(zap.NewNop())
}

// NewStoreWithLogger creates a detached JSON store that logs lifecycle
// events to the given logger.
func NewStoreWithLogger(log *zap.Logger) *Store {
	return &Store{log: log}
}

// Attach loads the database file from config.DataDir, creating the directory
// and an empty database when nothing is persisted yet. A failed load leaves
// the store detached.
// Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(dataDir, config.Database+".json")
	db, err := loadDatabase(path, config.Database)
	if err != nil {
		return err
	}

	s.config = config
	s.path = path
	s.db = db
	s.attached = true
	s.log.Info("attached json store",
		zap.String("path", path),
		zap.String("database", db.Name()),
		zap.Int("tables", len(db.TableNames())))
	return nil
}

// loadDatabase reads and decodes the document at path. A missing file is not
// an error: it yields a fresh empty database.
func loadDatabase(path, name string) (*types.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.NewDatabase(name), nil
		}
		return nil, fmt.Errorf("read database file: %w", err)
	}
	db, err := DecodeDatabase(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return db, nil
}

// Save persists the full database snapshot to the database file.
// Returns ErrStoreDetached when the store is not attached.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if !s.attached {
		return types.ErrStoreDetached
	}
	data, err := EncodeDatabase(s.db)
	if err != nil {
		return fmt.Errorf("encode database: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write database file: %w", err)
	}
	s.log.Debug("saved database",
		zap.String("path", s.path),
		zap.Int("bytes", len(data)))
	return nil
}

// Detach saves the database and releases the store. Idempotent: detaching a
// detached store succeeds.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if err := s.saveLocked(); err != nil {
		return err
	}
	s.log.Info("detached json store", zap.String("path", s.path))
	s.attached = false
	s.db = nil
	s.path = ""
	return nil
}

// Database returns the attached working copy.
// Returns ErrStoreDetached when the store is not attached.
func (s *Store) Database() (*types.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	return s.db, nil
}
