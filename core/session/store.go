package session

import "context"

// Store persists the single session slot of one client actor, the Go
// counterpart of the browser's local-storage key. Implementations must be
// safe for concurrent use.
type Store interface {
	// Load returns the persisted session, or ErrNotFound when the slot
	// is empty.
	Load(ctx context.Context) (Session, error)

	// Save replaces the persisted session.
	Save(ctx context.Context, sess Session) error

	// Clear empties the slot. Clearing an already empty slot is not an
	// error.
	Clear(ctx context.Context) error
}
