package types

import (
	"errors"
	"fmt"
	"strings"
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Database-level errors.
var (
	ErrTableExists   = errors.New("table already exists")
	ErrTableNotFound = errors.New("table not found")
	ErrInvalidName   = errors.New("invalid name")
)

// ValidationError reports one column whose value failed validation.
// Reason is human-readable and suitable for per-field feedback.
type ValidationError struct {
	Column string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
}

// ValidationErrors collects every failing column from one validation pass.
// Record building reports all failures at once rather than stopping at the
// first, so callers can render complete per-field feedback.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// UnknownColumnError reports a column name that is not part of the schema.
type UnknownColumnError struct {
	Name string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Name)
}

// OutOfRangeError reports a record position outside the table bounds.
type OutOfRangeError struct {
	Position int
	Len      int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("position %d out of range [0, %d)", e.Position, e.Len)
}

// FormatError reports a malformed persistence document. It is terminal for
// the load attempt that produced it; no partially decoded state survives.
type FormatError struct {
	Detail string
}

func (e *FormatError) Error() string {
	return "format error: " + e.Detail
}
