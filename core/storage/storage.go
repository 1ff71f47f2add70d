package storage

import "context"

// Blob describes a stored object.
type Blob struct {
	Key         string
	ContentType string
	Size        int64
}

// Storage is the blob persistence interface. Keys are slash-separated
// relative paths; implementations must reject traversal segments.
type Storage interface {
	// Put stores data under key, replacing any existing object.
	Put(ctx context.Context, key string, data []byte, contentType string) (Blob, error)

	// Get returns the object's content, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object. Deleting a missing object returns
	// ErrNotFound.
	Delete(ctx context.Context, key string) error

	// Exists reports whether the object is present.
	Exists(ctx context.Context, key string) bool

	// URL returns the public URL for a key.
	URL(key string) string
}
