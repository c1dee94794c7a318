package types

import "errors"

// Record is one validated row: an immutable mapping from column name to
// Value. Records are built through NewRecord only, so any Record in a table
// is known to match that table's schema.
type Record struct {
	values map[string]Value
}

// NewRecord validates raw input against the schema and builds a Record.
// Raw map values may be raw tokens (see ParseValue) or already-constructed
// Values whose type must match the column.
//
// All failures are collected into a single ValidationErrors result: shape
// problems (missing or extra keys) and per-column value problems are reported
// together rather than stopping at the first, so callers can render complete
// per-field feedback.
func NewRecord(schema *Schema, raw map[string]any) (Record, error) {
	var errs ValidationErrors
	if err := schema.ValidateShape(raw); err != nil {
		var shape ValidationErrors
		if !errors.As(err, &shape) {
			return Record{}, err
		}
		errs = append(errs, shape...)
	}

	values := make(map[string]Value, schema.Len())
	for _, col := range schema.cols {
		rawVal, ok := raw[col.Name]
		if !ok {
			// Already reported by ValidateShape.
			continue
		}
		v, err := ParseValue(col.Type, rawVal)
		if err != nil {
			errs = append(errs, &ValidationError{Column: col.Name, Reason: err.Error()})
			continue
		}
		values[col.Name] = v
	}

	if len(errs) > 0 {
		return Record{}, errs
	}
	return Record{values: values}, nil
}

// Get returns the value stored under the named column.
// Returns UnknownColumnError if the record has no such column.
func (r Record) Get(name string) (Value, error) {
	v, ok := r.values[name]
	if !ok {
		return Value{}, &UnknownColumnError{Name: name}
	}
	return v, nil
}

// Equal reports structural equality: same column set, equal value per column.
func (r Record) Equal(other Record) bool {
	if len(r.values) != len(other.values) {
		return false
	}
	for name, v := range r.values {
		if ov, ok := other.values[name]; !ok || ov != v {
			return false
		}
	}
	return true
}
