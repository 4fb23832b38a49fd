package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mehendichic/mehendi-chic/internal/domain"
)

// Authorizer checks whether the caller may perform destructive admin
// operations. Kept as an explicit seam even though the current
// implementation always authorizes.
type Authorizer interface {
	ValidatePermissions(ctx context.Context) error
}

// DeleteCategoryResult reports what a cascading category delete removed.
type DeleteCategoryResult struct {
	Category        *domain.Category `json:"category"`
	DeletedProducts int              `json:"deletedProducts"`
	StorageCleaned  bool             `json:"storageCleaned"`
}

// CategoryService orchestrates the category lifecycle: validation,
// uniqueness checks, image transfer, row mutation, and compensating cleanup
// on partial failure. Each operation is a one-shot linear flow; there are no
// retries.
type CategoryService struct {
	categories domain.CategoryRepository
	products   domain.ProductRepository
	images     *ImageService
	authorizer Authorizer
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories domain.CategoryRepository, products domain.ProductRepository, images *ImageService, authorizer Authorizer) *CategoryService {
	return &CategoryService{categories: categories, products: products, images: images, authorizer: authorizer}
}

// List returns all categories, newest first.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// GetByID returns a single category.
func (s *CategoryService) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// Create validates, uploads the optional image, and inserts the category.
// The duplicate-name check runs before any upload so a conflicting create
// never writes to storage. If the insert fails after an upload, the uploaded
// image is removed best-effort before the insert error is surfaced.
func (s *CategoryService) Create(ctx context.Context, name string, file *ImageFile) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}

	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: category %q already exists", domain.ErrDuplicateName, name)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check category name: %w", err)
	}

	var imageURL string
	if file != nil {
		// The row does not exist yet, so the key is scoped to a timestamp.
		upload, err := s.images.Upload(ctx, file, "category", time.Now().UnixMilli())
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		imageURL = upload.URL
	}

	category := &domain.Category{Name: name, Image: imageURL}
	if err := s.categories.Create(ctx, category); err != nil {
		if imageURL != "" {
			if rmErr := s.images.Remove(ctx, imageURL); rmErr != nil {
				slog.Warn("cleanup of uploaded image after failed insert", "url", imageURL, "error", rmErr)
			}
		}
		if errors.Is(err, domain.ErrDuplicateName) {
			return nil, fmt.Errorf("%w: category %q already exists", domain.ErrDuplicateName, name)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return category, nil
}

// Update renames a category and optionally replaces its image. The old image
// is deleted only when the replacement succeeded and no other row still
// references it. If the row update fails after an upload, the new image is
// removed best-effort and the update error surfaced.
func (s *CategoryService) Update(ctx context.Context, id int64, name string, file *ImageFile) (*domain.Category, error) {
	current, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("fetch category: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}

	if existing, err := s.categories.GetByName(ctx, name); err == nil && existing.ID != id {
		return nil, fmt.Errorf("%w: category name %q already exists", domain.ErrDuplicateName, name)
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check category name: %w", err)
	}

	newImageURL := current.Image
	if file != nil {
		// The id is known here, so the key is scoped to the real entity id.
		upload, err := s.images.Upload(ctx, file, "category", id)
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		newImageURL = upload.URL

		if current.Image != "" && current.Image != newImageURL {
			s.images.cleanup(ctx, current.Image, "category", id)
		}
	}

	updated := &domain.Category{ID: id, Name: name, Image: newImageURL, CreatedAt: current.CreatedAt}
	if err := s.categories.Update(ctx, updated); err != nil {
		if file != nil && newImageURL != current.Image {
			if rmErr := s.images.Remove(ctx, newImageURL); rmErr != nil {
				slog.Warn("cleanup of uploaded image after failed update", "url", newImageURL, "error", rmErr)
			}
		}
		if errors.Is(err, domain.ErrDuplicateName) {
			return nil, fmt.Errorf("%w: category name %q already exists", domain.ErrDuplicateName, name)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return updated, nil
}

// Delete cascades: product images are cleaned best-effort, product rows
// bulk-deleted, then the category row and finally its own image removed.
// Storage failures never block the row deletes; they only clear the
// StorageCleaned flag in the result.
func (s *CategoryService) Delete(ctx context.Context, id int64) (*DeleteCategoryResult, error) {
	if err := s.authorizer.ValidatePermissions(ctx); err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("fetch category: %w", err)
	}

	products, err := s.products.ListByCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch products for category: %w", err)
	}

	storageCleaned := true
	for _, p := range products {
		if p.Image == "" {
			continue
		}
		if !s.images.cleanup(ctx, p.Image, "product", p.ID) {
			storageCleaned = false
		}
	}

	deleted, err := s.products.DeleteByCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete products: %w", err)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("delete category: %w", err)
	}

	// The row is gone; its image goes too unless something else shares it.
	if category.Image != "" {
		if !s.images.cleanup(ctx, category.Image, "", 0) {
			storageCleaned = false
		}
	}

	slog.Info("category deleted", "id", id, "name", category.Name,
		"deletedProducts", deleted, "storageCleaned", storageCleaned)

	return &DeleteCategoryResult{
		Category:        category,
		DeletedProducts: deleted,
		StorageCleaned:  storageCleaned,
	}, nil
}
