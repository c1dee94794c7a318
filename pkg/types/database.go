package types

import (
	"sort"

	"github.com/google/uuid"
)

// Database is a named collection of tables. Table names are unique and
// case-sensitive.
type Database struct {
	id     string
	name   string
	tables map[string]*Table
}

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewDatabase creates an empty database with a generated identity.
func NewDatabase(name string) *Database {
	return RestoreDatabase(newUUID(), name)
}

// RestoreDatabase creates an empty database with an existing identity, as
// read back from persistence. An empty id gets a fresh UUID v7.
func RestoreDatabase(id, name string) *Database {
	if id == "" {
		id = newUUID()
	}
	return &Database{
		id:     id,
		name:   name,
		tables: make(map[string]*Table),
	}
}

// ID returns the database identity (UUID v7, assigned at creation).
func (d *Database) ID() string {
	return d.id
}

// Name returns the database name.
func (d *Database) Name() string {
	return d.name
}

// CreateTable creates an empty table bound to the given schema.
// Returns ErrInvalidName for an empty name and ErrTableExists when a table
// with that name already exists.
func (d *Database) CreateTable(name string, schema *Schema) (*Table, error) {
	table := NewTable(schema)
	if err := d.AddTable(name, table); err != nil {
		return nil, err
	}
	return table, nil
}

// AddTable installs an existing table under the given name. Used by
// persistence backends when restoring a database.
// Returns ErrInvalidName for an empty name and ErrTableExists when the name
// is taken.
func (d *Database) AddTable(name string, table *Table) error {
	if name == "" {
		return ErrInvalidName
	}
	if _, exists := d.tables[name]; exists {
		return ErrTableExists
	}
	d.tables[name] = table
	return nil
}

// DropTable removes the named table and all its records.
// Returns ErrTableNotFound if no such table exists.
func (d *Database) DropTable(name string) error {
	if _, ok := d.tables[name]; !ok {
		return ErrTableNotFound
	}
	delete(d.tables, name)
	return nil
}

// GetTable returns the named table.
// Returns ErrTableNotFound if no such table exists.
func (d *Database) GetTable(name string) (*Table, error) {
	table, ok := d.tables[name]
	if !ok {
		return nil, ErrTableNotFound
	}
	return table, nil
}

// TableNames returns the table names in sorted order.
func (d *Database) TableNames() []string {
	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
