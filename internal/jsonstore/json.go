// JSON document structures for shelf persistence.
// These structures define the on-disk format shared by the JSON backend
// (whole-database documents) and the SQLite backend (per-row documents).
package jsonstore

import json "github.com/goccy/go-json"

// databaseJSON is the top-level document: one database per file.
type databaseJSON struct {
	DatabaseID string               `json:"database_id"`
	Name       string               `json:"name"`
	Tables     map[string]tableJSON `json:"tables"`
}

// tableJSON holds one table's schema and its records in table order.
type tableJSON struct {
	Schema  []columnJSON           `json:"schema"`
	Records []map[string]valueJSON `json:"records"`
}

// columnJSON is one schema column.
type columnJSON struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// valueJSON pairs a column type tag with the value encoding: a canonical
// string token for scalar types, a {"low","high"} object for StringInterval.
type valueJSON struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// intervalJSON is the structured value form for StringInterval columns.
type intervalJSON struct {
	Low  string `json:"low"`
	High string `json:"high"`
}
