// Package sqlitestore implements the SQLite backend for shelf. Schemas and
// records are stored as JSON documents in the same encoding the JSON backend
// uses, so both backends re-validate through the one codec path on load.
package sqlitestore

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/dukaforge/shelfdb/internal/jsonstore"
	"github.com/dukaforge/shelfdb/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Store implements types.Store over a SQLite database file.
type Store struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	db       *types.Database
	conn     *sql.DB
	log      *zap.Logger
}

// NewStore creates a detached SQLite store. Call Attach with a Config to
// load or create a database.
func NewStore() *Store {
	return NewStoreWithLogger(zap.NewNop())
}

// NewStoreWithLogger creates a detached SQLite store that logs lifecycle
// events to the given logger.
func NewStoreWithLogger(log *zap.Logger) *Store {
	return &Store{log: log}
}

// Attach opens the SQLite file in config.DataDir, initializes the schema,
// and loads the stored snapshot into memory. A failed load closes the
// connection and leaves the store detached.
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

	path := filepath.Join(dataDir, config.Database+".db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return fmt.Errorf("init schema: %w", err)
	}

	db, err := loadDatabase(conn, config.Database)
	if err != nil {
		conn.Close()
		return err
	}

	s.config = config
	s.conn = conn
	s.db = db
	s.attached = true
	s.log.Info("attached sqlite store",
		zap.String("path", path),
		zap.String("database", db.Name()),
		zap.Int("tables", len(db.TableNames())))
	return nil
}

// loadDatabase rebuilds the in-memory database from the snapshot tables.
// Every record passes through the codec's raw form and the table's insert
// validation.
func loadDatabase(conn *sql.DB, name string) (*types.Database, error) {
	var id, storedName string
	err := conn.QueryRow(`SELECT database_id, name FROM databases LIMIT 1`).Scan(&id, &storedName)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return types.NewDatabase(name), nil
	case err != nil:
		return nil, fmt.Errorf("query database row: %w", err)
	}
	db := types.RestoreDatabase(id, storedName)

	rows, err := conn.Query(`SELECT name, schema_json FROM tables ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, schemaJSON string
		if err := rows.Scan(&tableName, &schemaJSON); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		schema, err := jsonstore.DecodeSchema([]byte(schemaJSON))
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", tableName, err)
		}
		table := types.NewTable(schema)
		if err := loadRecords(conn, tableName, table); err != nil {
			return nil, err
		}
		if err := db.AddTable(tableName, table); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return db, nil
}

func loadRecords(conn *sql.DB, tableName string, table *types.Table) error {
	rows, err := conn.Query(
		`SELECT record_json FROM rows WHERE table_name = ? ORDER BY position`, tableName)
	if err != nil {
		return fmt.Errorf("query rows for %q: %w", tableName, err)
	}
	defer rows.Close()

	for rows.Next() {
		var recordJSON string
		if err := rows.Scan(&recordJSON); err != nil {
			return fmt.Errorf("scan record row: %w", err)
		}
		raw, err := jsonstore.DecodeRecord([]byte(recordJSON), table.Schema())
		if err != nil {
			return fmt.Errorf("table %q: %w", tableName, err)
		}
		if _, err := table.Insert(raw); err != nil {
			return fmt.Errorf("table %q: %w", tableName, err)
		}
	}
	return rows.Err()
}

// Save rewrites the full snapshot in one transaction.
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

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM rows`, `DELETE FROM tables`, `DELETE FROM databases`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
	}
	if _, err := tx.Exec(
		`INSERT INTO databases (database_id, name) VALUES (?, ?)`,
		s.db.ID(), s.db.Name()); err != nil {
		return fmt.Errorf("save database row: %w", err)
	}

	for _, name := range s.db.TableNames() {
		table, err := s.db.GetTable(name)
		if err != nil {
			return err
		}
		schemaJSON, err := jsonstore.EncodeSchema(table.Schema())
		if err != nil {
			return fmt.Errorf("table %q: %w", name, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO tables (name, schema_json) VALUES (?, ?)`,
			name, string(schemaJSON)); err != nil {
			return fmt.Errorf("save table %q: %w", name, err)
		}
		for pos, rec := range table.All() {
			recordJSON, err := jsonstore.EncodeRecord(rec, table.Schema())
			if err != nil {
				return fmt.Errorf("table %q record %d: %w", name, pos, err)
			}
			if _, err := tx.Exec(
				`INSERT INTO rows (table_name, position, record_json) VALUES (?, ?, ?)`,
				name, pos, string(recordJSON)); err != nil {
				return fmt.Errorf("save record %d of %q: %w", pos, name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	s.log.Debug("saved database snapshot",
		zap.String("database", s.db.Name()),
		zap.Int("tables", len(s.db.TableNames())))
	return nil
}

// Detach saves the snapshot and closes the connection. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if err := s.saveLocked(); err != nil {
		return err
	}
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	s.log.Info("detached sqlite store", zap.String("database", s.db.Name()))
	s.attached = false
	s.db = nil
	s.conn = nil
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
