package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mehendichic/mehendi-chic/internal/domain"
	"github.com/mehendichic/mehendi-chic/internal/storage"
)

const maxImageSize = 10 * 1024 * 1024 // 10MB

// ImageFile is a validated-on-upload file received from a form submission.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadResult holds the outcome of a successful upload.
type UploadResult struct {
	URL string
	Key string
}

// ImageService moves image bytes in and out of the object store and answers
// whether a stored image is still referenced by any content row.
type ImageService struct {
	store      domain.ObjectStore
	bucket     string
	categories domain.CategoryRepository
	products   domain.ProductRepository
}

// NewImageService creates a new ImageService writing into the given bucket.
func NewImageService(store domain.ObjectStore, bucket string, categories domain.CategoryRepository, products domain.ProductRepository) *ImageService {
	return &ImageService{store: store, bucket: bucket, categories: categories, products: products}
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Upload validates the file and writes it under a freshly computed key.
// entity is "category" or "product"; entityID scopes the key (a timestamp
// stands in for rows that do not exist yet).
func (s *ImageService) Upload(ctx context.Context, file *ImageFile, entity string, entityID int64) (*UploadResult, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: no file provided", domain.ErrInvalidInput)
	}

	if len(file.Data) > maxImageSize {
		return nil, fmt.Errorf("%w: file size (%.2fMB) exceeds limit (10MB)",
			domain.ErrInvalidInput, float64(len(file.Data))/1024/1024)
	}

	if !allowedImageTypes[file.ContentType] {
		return nil, fmt.Errorf("%w: file type %s not allowed. Use: JPEG, PNG, or WebP",
			domain.ErrInvalidInput, file.ContentType)
	}

	key := storage.ComputeKey(entity, entityID, file.Name)
	if err := s.store.Save(ctx, key, file.Data); err != nil {
		return nil, fmt.Errorf("storage upload failed: %w", err)
	}

	return &UploadResult{URL: s.store.PublicURL(key), Key: key}, nil
}

// Remove deletes the object behind a public URL. An empty URL is a no-op:
// deleting "no image" is success, not an error. A second delete of the same
// URL reports domain.ErrNotFound, which cleanup callers treat as done.
func (s *ImageService) Remove(ctx context.Context, publicURL string) error {
	if publicURL == "" {
		return nil
	}

	objectPath := storage.ExtractObjectPath(publicURL)
	if objectPath == "" {
		return fmt.Errorf("could not extract storage path from URL %q", publicURL)
	}

	bucket, key, ok := storage.SplitObjectPath(objectPath)
	if !ok || bucket != s.bucket {
		return fmt.Errorf("URL %q does not belong to bucket %q", publicURL, s.bucket)
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("storage delete failed: %w", err)
	}
	return nil
}

// IsReferenced reports whether any content row other than the excluded one
// still points at the given image URL. excludeEntity/excludeID identify the
// row currently being mutated ("" and 0 exclude nothing).
//
// On scan failure it returns true: an in-use image must never be deleted
// because of a transient read error, at the cost of an occasional orphaned
// object.
func (s *ImageService) IsReferenced(ctx context.Context, publicURL, excludeEntity string, excludeID int64) bool {
	if publicURL == "" {
		return false
	}

	var catExclude, prodExclude int64
	switch excludeEntity {
	case "category":
		catExclude = excludeID
	case "product":
		prodExclude = excludeID
	}

	catCount, err := s.categories.CountByImage(ctx, publicURL, catExclude)
	if err != nil {
		slog.Warn("image usage scan failed, keeping image", "url", publicURL, "error", err)
		return true
	}

	prodCount, err := s.products.CountByImage(ctx, publicURL, prodExclude)
	if err != nil {
		slog.Warn("image usage scan failed, keeping image", "url", publicURL, "error", err)
		return true
	}

	return catCount+prodCount > 0
}

// cleanup best-effort removes an image unless it is still referenced
// elsewhere. Failures are logged and swallowed: losing track of an orphaned
// object is preferable to blocking the mutation in progress.
func (s *ImageService) cleanup(ctx context.Context, publicURL, excludeEntity string, excludeID int64) bool {
	if publicURL == "" {
		return true
	}
	if s.IsReferenced(ctx, publicURL, excludeEntity, excludeID) {
		return true
	}
	if err := s.Remove(ctx, publicURL); err != nil {
		slog.Warn("image cleanup failed", "url", publicURL, "error", err)
		return false
	}
	return true
}
