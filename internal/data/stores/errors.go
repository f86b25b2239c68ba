package stores

import "errors"

var (
	// ErrNotInitialized is returned when the data directory has no
	// snapshot index yet. Fatal at startup.
	ErrNotInitialized = errors.New("store not initialized, run 'parrot init' first")

	// ErrAlreadyInitialized is returned by Init when the index exists.
	ErrAlreadyInitialized = errors.New("store already initialized")

	// ErrDuplicate is returned when adding a snapshot whose name is
	// already taken.
	ErrDuplicate = errors.New("snapshot name already exists")

	// ErrNotFound is returned when a named snapshot does not exist.
	ErrNotFound = errors.New("snapshot not found")
)
