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

// ProductService orchestrates the product (design) lifecycle. Products
// follow the same linear create/update/delete flows as categories, with a
// category-existence check in place of the name-uniqueness check.
type ProductService struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	images     *ImageService
	authorizer Authorizer
}

// NewProductService creates a new ProductService.
func NewProductService(products domain.ProductRepository, categories domain.CategoryRepository, images *ImageService, authorizer Authorizer) *ProductService {
	return &ProductService{products: products, categories: categories, images: images, authorizer: authorizer}
}

// List returns all products, newest first.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// ListByCategory returns all products in a category, newest first.
func (s *ProductService) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	return s.products.ListByCategory(ctx, categoryID)
}

// Create validates, uploads the optional image, and inserts the product.
// The category-exists check runs before any upload is attempted.
func (s *ProductService) Create(ctx context.Context, name string, categoryID int64, file *ImageFile) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}

	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: selected category does not exist", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("check category: %w", err)
	}

	var imageURL string
	if file != nil {
		upload, err := s.images.Upload(ctx, file, "product", time.Now().UnixMilli())
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		imageURL = upload.URL
	}

	product := &domain.Product{Name: name, CategoryID: category.ID, Image: imageURL}
	if err := s.products.Create(ctx, product); err != nil {
		if imageURL != "" {
			if rmErr := s.images.Remove(ctx, imageURL); rmErr != nil {
				slog.Warn("cleanup of uploaded image after failed insert", "url", imageURL, "error", rmErr)
			}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return product, nil
}

// Update renames or re-categorizes a product and optionally replaces its
// image, with the same old-image cleanup and failure compensation as the
// category update flow.
func (s *ProductService) Update(ctx context.Context, id int64, name string, categoryID int64, file *ImageFile) (*domain.Product, error) {
	current, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("fetch product: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}

	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: selected category does not exist", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("check category: %w", err)
	}

	newImageURL := current.Image
	if file != nil {
		upload, err := s.images.Upload(ctx, file, "product", id)
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		newImageURL = upload.URL

		if current.Image != "" && current.Image != newImageURL {
			s.images.cleanup(ctx, current.Image, "product", id)
		}
	}

	updated := &domain.Product{ID: id, Name: name, CategoryID: categoryID, Image: newImageURL, CreatedAt: current.CreatedAt}
	if err := s.products.Update(ctx, updated); err != nil {
		if file != nil && newImageURL != current.Image {
			if rmErr := s.images.Remove(ctx, newImageURL); rmErr != nil {
				slog.Warn("cleanup of uploaded image after failed update", "url", newImageURL, "error", rmErr)
			}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return updated, nil
}

// Delete removes a product and best-effort cleans its image. The image is
// deleted before the row, and only when no other row references the same
// URL; an image cleanup failure never blocks the row delete.
func (s *ProductService) Delete(ctx context.Context, id int64) (*domain.Product, error) {
	if err := s.authorizer.ValidatePermissions(ctx); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("fetch product: %w", err)
	}

	if product.Image != "" {
		s.images.cleanup(ctx, product.Image, "product", id)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("delete product: %w", err)
	}

	slog.Info("product deleted", "id", id, "name", product.Name)
	return product, nil
}
