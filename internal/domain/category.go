package domain

import (
	"context"
	"time"
)

// Category groups gallery designs. The Image field holds the public URL of
// the category's cover image, or "" when no image is set.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryRepository handles category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id int64) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	// List returns all categories, newest first.
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id int64) error
	// CountByImage reports how many categories reference the given image URL,
	// excluding the row with excludeID (pass 0 to exclude nothing).
	CountByImage(ctx context.Context, imageURL string, excludeID int64) (int, error)
}
