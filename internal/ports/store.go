package ports

import "context"

// StateStore persists the user-state snapshot as a single opaque blob under a
// fixed installation-scoped key. Every mutation writes the full snapshot;
// there is no incremental persistence.
type StateStore interface {
	// Load returns the stored blob, or (nil, nil) when nothing has been
	// persisted yet.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored blob.
	Save(ctx context.Context, blob []byte) error
}
