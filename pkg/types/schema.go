package types

import (
	"fmt"
	"sort"
)

// Column is a named, typed slot in a schema.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Schema is an ordered sequence of uniquely named columns. Column names are
// case-sensitive. A schema is immutable once created; changing a bound
// table's shape means building a new schema and migrating its records.
type Schema struct {
	cols  []Column
	index map[string]int
}

// NewSchema builds a schema from the given columns.
// Returns an error when the column list is empty, a column name is empty or
// duplicated, or a column type is not supported.
func NewSchema(cols []Column) (*Schema, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("schema must have at least one column")
	}
	s := &Schema{
		cols:  make([]Column, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	copy(s.cols, cols)
	for i, col := range s.cols {
		if col.Name == "" {
			return nil, fmt.Errorf("column %d: name must not be empty", i)
		}
		if !IsValidType(col.Type) {
			return nil, fmt.Errorf("column %q: unknown type %q", col.Name, col.Type)
		}
		if _, dup := s.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		s.index[col.Name] = i
	}
	return s, nil
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.cols)
}

// Columns returns a copy of the column definitions in schema order.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.cols))
	copy(out, s.cols)
	return out
}

// ColumnNames returns the column names in schema order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.cols))
	for i, col := range s.cols {
		names[i] = col.Name
	}
	return names
}

// TypeOf returns the type of the named column.
// Returns UnknownColumnError if the schema has no such column.
func (s *Schema) TypeOf(name string) (ColumnType, error) {
	i, ok := s.index[name]
	if !ok {
		return "", &UnknownColumnError{Name: name}
	}
	return s.cols[i].Type, nil
}

// ValidateShape checks that the raw map's key set equals the schema's column
// names exactly. Every missing and extra key is reported, as
// ValidationErrors, with the offending name; values are not inspected.
func (s *Schema) ValidateShape(raw map[string]any) error {
	var errs ValidationErrors
	for _, col := range s.cols {
		if _, ok := raw[col.Name]; !ok {
			errs = append(errs, &ValidationError{Column: col.Name, Reason: "missing from record"})
		}
	}
	var extra []string
	for key := range raw {
		if _, ok := s.index[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		errs = append(errs, &ValidationError{Column: key, Reason: "not a schema column"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
