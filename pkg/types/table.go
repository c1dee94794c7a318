package types

import "sort"

// Table is an ordered sequence of records sharing one schema. Positions are
// the primary handle for CRUD: deleting a record shifts every later position
// down by one, so callers must not assume position stability across deletes.
//
// Every mutating operation either fully succeeds or leaves the table in its
// prior state. Tables provide no internal locking; callers embedding a table
// in a concurrent context must serialize access themselves.
type Table struct {
	schema  *Schema
	records []Record
}

// NewTable creates an empty table bound to the given schema.
func NewTable(schema *Schema) *Table {
	return &Table{schema: schema}
}

// Schema returns the schema the table was created with.
func (t *Table) Schema() *Schema {
	return t.schema
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Insert validates raw input into a Record, appends it, and returns its
// position. On validation failure the table is unchanged.
func (t *Table) Insert(raw map[string]any) (int, error) {
	rec, err := NewRecord(t.schema, raw)
	if err != nil {
		return 0, err
	}
	t.records = append(t.records, rec)
	return len(t.records) - 1, nil
}

// Read returns the record at the given position.
// Returns OutOfRangeError if the position is outside the table.
func (t *Table) Read(pos int) (Record, error) {
	if pos < 0 || pos >= len(t.records) {
		return Record{}, &OutOfRangeError{Position: pos, Len: len(t.records)}
	}
	return t.records[pos], nil
}

// Update re-validates raw input and replaces the record at pos, preserving
// its position. On validation failure the existing record is unchanged.
func (t *Table) Update(pos int, raw map[string]any) error {
	if pos < 0 || pos >= len(t.records) {
		return &OutOfRangeError{Position: pos, Len: len(t.records)}
	}
	rec, err := NewRecord(t.schema, raw)
	if err != nil {
		return err
	}
	t.records[pos] = rec
	return nil
}

// Delete removes the record at pos. Later positions shift down by one.
// Returns OutOfRangeError if the position is outside the table.
func (t *Table) Delete(pos int) error {
	if pos < 0 || pos >= len(t.records) {
		return &OutOfRangeError{Position: pos, Len: len(t.records)}
	}
	t.records = append(t.records[:pos], t.records[pos+1:]...)
	return nil
}

// SortBy reorders the records in place by the named column using the type's
// ordering. The sort is stable: records with equal keys keep their prior
// relative order.
// Returns UnknownColumnError if the schema has no such column.
func (t *Table) SortBy(column string, ascending bool) error {
	ct, err := t.schema.TypeOf(column)
	if err != nil {
		return err
	}
	compare := registry[ct].compare
	sort.SliceStable(t.records, func(i, j int) bool {
		c := compare(t.records[i].values[column], t.records[j].values[column])
		if ascending {
			return c < 0
		}
		return c > 0
	})
	return nil
}

// All returns a read-only snapshot of the records in table order. The
// returned slice is a copy; records themselves are immutable.
func (t *Table) All() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}
