package domain

import "context"

// ObjectStore abstracts raw object byte storage under string keys.
// The production implementation writes files to disk and serves them under
// stable public URLs; tests may swap in other backends.
type ObjectStore interface {
	// Save writes data under key. It must refuse to overwrite an existing
	// object rather than silently clobbering it.
	Save(ctx context.Context, key string, data []byte) error
	// Delete removes the object at key. Deleting a missing object returns
	// ErrNotFound, which cleanup callers treat as success.
	Delete(ctx context.Context, key string) error
	// PublicURL resolves the stable public URL for a key.
	PublicURL(key string) string
}
