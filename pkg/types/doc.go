// Package types defines the typed record model for shelfdb: column types and
// their validation/ordering behavior, the Value union, schemas, records,
// tables, the Database container, and the Store interface with its standard
// error types.
package types
