package types

// Store defines the interface for backend-agnostic database persistence.
// Callers attach with a Config, work against the in-memory Database, and
// save or detach when done.
type Store interface {
	// Attach loads the database described by config, creating an empty one
	// when nothing is persisted yet. Creates the DataDir if it does not
	// exist. Returns ErrAlreadyAttached if called while already attached.
	// A failed Attach leaves the store detached and any previously loaded
	// database untouched.
	Attach(config Config) error

	// Detach saves the database and releases backend resources.
	// Idempotent: detaching a detached store succeeds.
	Detach() error

	// Database returns the attached working copy.
	// Returns ErrStoreDetached when the store is not attached.
	Database() (*Database, error)

	// Save persists the full database snapshot.
	// Returns ErrStoreDetached when the store is not attached.
	Save() error
}
