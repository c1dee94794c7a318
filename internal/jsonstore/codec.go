// Codec between in-memory databases and the shelf JSON persistence format.
// Decode never trusts the document: every value is re-validated through the
// type registry, so a table restored from an externally edited file holds
// the same invariants as one built in memory.
package jsonstore

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/dukaforge/shelfdb/pkg/types"
)

// EncodeDatabase renders the full database as an indented JSON document.
func EncodeDatabase(db *types.Database) ([]byte, error) {
	doc := databaseJSON{
		DatabaseID: db.ID(),
		Name:       db.Name(),
		Tables:     make(map[string]tableJSON, len(db.TableNames())),
	}
	for _, name := range db.TableNames() {
		table, err := db.GetTable(name)
		if err != nil {
			return nil, err
		}
		td, err := encodeTableDoc(table)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", name, err)
		}
		doc.Tables[name] = td
	}
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeDatabase parses and re-validates a full database document.
// Returns FormatError for structural problems and ValidationErrors when a
// stored value no longer passes its column type; either way the whole decode
// fails and no partially loaded database is returned.
func DecodeDatabase(data []byte) (*types.Database, error) {
	var doc databaseJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &types.FormatError{Detail: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if doc.Name == "" {
		return nil, &types.FormatError{Detail: `missing "name"`}
	}
	if doc.Tables == nil {
		return nil, &types.FormatError{Detail: `missing "tables"`}
	}
	db := types.RestoreDatabase(doc.DatabaseID, doc.Name)
	for name, td := range doc.Tables {
		table, err := decodeTableDoc(td)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", name, err)
		}
		if err := db.AddTable(name, table); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// EncodeTable renders one table as an indented JSON document.
func EncodeTable(table *types.Table) ([]byte, error) {
	doc, err := encodeTableDoc(table)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeTable parses and re-validates a single-table document.
func DecodeTable(data []byte) (*types.Table, error) {
	var doc tableJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &types.FormatError{Detail: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return decodeTableDoc(doc)
}

// EncodeSchema renders a schema as a compact JSON array.
func EncodeSchema(schema *types.Schema) ([]byte, error) {
	return json.Marshal(encodeSchemaDoc(schema))
}

// DecodeSchema parses a schema array and rebuilds the Schema.
func DecodeSchema(data []byte) (*types.Schema, error) {
	var cols []columnJSON
	if err := json.Unmarshal(data, &cols); err != nil {
		return nil, &types.FormatError{Detail: fmt.Sprintf("invalid schema JSON: %v", err)}
	}
	return decodeSchemaDoc(cols)
}

// EncodeRecord renders one record as a compact JSON object, columns encoded
// per the schema.
func EncodeRecord(rec types.Record, schema *types.Schema) ([]byte, error) {
	doc, err := encodeRecordDoc(rec, schema)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// DecodeRecord parses one record object into the raw map form accepted by
// Table.Insert, so the caller's insert runs the full validation path.
func DecodeRecord(data []byte, schema *types.Schema) (map[string]any, error) {
	var doc map[string]valueJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &types.FormatError{Detail: fmt.Sprintf("invalid record JSON: %v", err)}
	}
	return decodeRecordDoc(doc, schema)
}

func encodeSchemaDoc(schema *types.Schema) []columnJSON {
	cols := schema.Columns()
	out := make([]columnJSON, len(cols))
	for i, col := range cols {
		out[i] = columnJSON{Name: col.Name, Type: string(col.Type)}
	}
	return out
}

func decodeSchemaDoc(cols []columnJSON) (*types.Schema, error) {
	defs := make([]types.Column, len(cols))
	for i, col := range cols {
		defs[i] = types.Column{Name: col.Name, Type: types.ColumnType(col.Type)}
	}
	schema, err := types.NewSchema(defs)
	if err != nil {
		return nil, &types.FormatError{Detail: fmt.Sprintf("invalid schema: %v", err)}
	}
	return schema, nil
}

func encodeTableDoc(table *types.Table) (tableJSON, error) {
	schema := table.Schema()
	doc := tableJSON{
		Schema:  encodeSchemaDoc(schema),
		Records: make([]map[string]valueJSON, 0, table.Len()),
	}
	for _, rec := range table.All() {
		rd, err := encodeRecordDoc(rec, schema)
		if err != nil {
			return tableJSON{}, err
		}
		doc.Records = append(doc.Records, rd)
	}
	return doc, nil
}

func decodeTableDoc(doc tableJSON) (*types.Table, error) {
	if doc.Schema == nil {
		return nil, &types.FormatError{Detail: `missing "schema"`}
	}
	if doc.Records == nil {
		return nil, &types.FormatError{Detail: `missing "records"`}
	}
	schema, err := decodeSchemaDoc(doc.Schema)
	if err != nil {
		return nil, err
	}
	table := types.NewTable(schema)
	for i, rd := range doc.Records {
		raw, err := decodeRecordDoc(rd, schema)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := table.Insert(raw); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return table, nil
}

func encodeRecordDoc(rec types.Record, schema *types.Schema) (map[string]valueJSON, error) {
	doc := make(map[string]valueJSON, schema.Len())
	for _, col := range schema.Columns() {
		v, err := rec.Get(col.Name)
		if err != nil {
			return nil, err
		}
		vj, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		doc[col.Name] = vj
	}
	return doc, nil
}

// decodeRecordDoc converts a record object into the raw map form accepted by
// Table.Insert. Type tags must match the schema; extra or missing columns
// are left for the insert's shape check to report.
func decodeRecordDoc(doc map[string]valueJSON, schema *types.Schema) (map[string]any, error) {
	raw := make(map[string]any, len(doc))
	for name, vj := range doc {
		want, err := schema.TypeOf(name)
		if err != nil {
			// Not a schema column; keep the key so shape validation
			// names it in the error.
			raw[name] = ""
			continue
		}
		if got := types.ColumnType(vj.Type); got != want {
			return nil, &types.FormatError{
				Detail: fmt.Sprintf("column %q: value tagged %q, schema says %q", name, got, want),
			}
		}
		rv, err := decodeRawValue(want, vj)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		raw[name] = rv
	}
	return raw, nil
}

func encodeValue(v types.Value) (valueJSON, error) {
	var payload any
	if v.Type() == types.TypeStringInterval {
		iv := v.Interval()
		payload = intervalJSON{Low: iv.Low, High: iv.High}
	} else {
		payload = v.CanonicalText()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return valueJSON{}, err
	}
	return valueJSON{Type: string(v.Type()), Value: data}, nil
}

// decodeRawValue unwraps the JSON payload into the raw form ParseValue
// accepts: a map for intervals, a canonical string token otherwise.
func decodeRawValue(want types.ColumnType, vj valueJSON) (any, error) {
	if want == types.TypeStringInterval {
		var pair map[string]any
		if err := json.Unmarshal(vj.Value, &pair); err != nil {
			return nil, &types.FormatError{Detail: "interval value is not an object"}
		}
		return pair, nil
	}
	var token string
	if err := json.Unmarshal(vj.Value, &token); err != nil {
		return nil, &types.FormatError{Detail: fmt.Sprintf("%s value is not a string token", want)}
	}
	return token, nil
}
