// Package store provides the public factory for shelf persistence backends,
// keeping the implementations internal.
//
// Example:
//
//	s, err := store.New(types.BackendJSON)
//	if err != nil { ... }
//	err = s.Attach(types.Config{
//	    Backend:  types.BackendJSON,
//	    DataDir:  ".shelf-db",
//	    Database: "inventory",
//	})
//	defer s.Detach()
package store

import (
	"go.uber.org/zap"

	"github.com/dukaforge/shelfdb/internal/jsonstore"
	"github.com/dukaforge/shelfdb/internal/sqlitestore"
	"github.com/dukaforge/shelfdb/pkg/types"
)

// New creates a detached store for the named backend.
// Returns ErrBackendUnknown for an unrecognized name.
func New(backend string) (types.Store, error) {
	return NewWithLogger(backend, zap.NewNop())
}

// NewWithLogger creates a detached store that logs lifecycle events to the
// given logger.
func NewWithLogger(backend string, log *zap.Logger) (types.Store, error) {
	switch backend {
	case types.BackendJSON:
		return jsonstore.NewStoreWithLogger(log), nil
	case types.BackendSQLite:
		return sqlitestore.NewStoreWithLogger(log), nil
	default:
		return nil, types.ErrBackendUnknown
	}
}
