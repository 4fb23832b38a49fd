package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mehendichic/mehendi-chic/internal/domain"
)

// publicPathPrefix is the URL path under which objects are served. The shape
// matches the storage URLs the rest of the system parses structurally.
const publicPathPrefix = "/storage/v1/object/public"

// DiskStore implements domain.ObjectStore on the local filesystem.
// Objects for bucket B and key K live at <root>/B/K and are served at
// <baseURL>/storage/v1/object/public/B/K.
type DiskStore struct {
	root    string
	bucket  string
	baseURL string
}

var _ domain.ObjectStore = (*DiskStore)(nil)

// NewDiskStore creates a DiskStore rooted at root for the given bucket.
// baseURL is the externally visible origin, e.g. "http://localhost:8080".
func NewDiskStore(root, bucket, baseURL string) (*DiskStore, error) {
	if root == "" || bucket == "" || baseURL == "" {
		return nil, fmt.Errorf("disk store: root, bucket, and base URL are required")
	}
	if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &DiskStore{root: root, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Bucket returns the bucket name this store writes into.
func (s *DiskStore) Bucket() string {
	return s.bucket
}

func (s *DiskStore) Save(ctx context.Context, key string, data []byte) error {
	p, err := s.objectPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create object directory: %w", err)
	}
	// O_EXCL enforces the non-overwriting contract: an existing object at the
	// same key fails loudly instead of being clobbered.
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("object already exists at key %q", key)
		}
		return fmt.Errorf("create object: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(p)
		return fmt.Errorf("write object: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close object: %w", err)
	}
	return nil
}

func (s *DiskStore) Delete(ctx context.Context, key string) error {
	p, err := s.objectPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (s *DiskStore) PublicURL(key string) string {
	return s.baseURL + publicPathPrefix + "/" + s.bucket + "/" + key
}

// Open returns the filesystem path for a key after validating it, for use by
// the object-serving handler.
func (s *DiskStore) Open(bucket, key string) (string, error) {
	if bucket != s.bucket {
		return "", domain.ErrNotFound
	}
	return s.objectPath(key)
}

// objectPath maps a key to its on-disk path, rejecting traversal attempts.
func (s *DiskStore) objectPath(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key cannot be empty")
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.root, s.bucket, clean), nil
}

// DisabledStore is the ObjectStore used when no storage root is configured.
// Every operation reports ErrNotConfigured instead of crashing, so the rest
// of the application degrades to image-less operation.
type DisabledStore struct{}

var _ domain.ObjectStore = DisabledStore{}

func (DisabledStore) Save(ctx context.Context, key string, data []byte) error {
	return domain.ErrNotConfigured
}

func (DisabledStore) Delete(ctx context.Context, key string) error {
	return domain.ErrNotConfigured
}

func (DisabledStore) PublicURL(key string) string {
	return ""
}
