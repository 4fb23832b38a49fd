package domain

import (
	"context"
	"time"
)

// Product is a single mehendi design belonging to a category.
// Rows live in the "images" table.
type Product struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	CategoryID int64     `json:"categoryId"`
	Image      string    `json:"image"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ProductRepository handles product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	// List returns all products, newest first.
	List(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id int64) error
	// DeleteByCategory removes every product in the category and returns
	// the number of rows deleted.
	DeleteByCategory(ctx context.Context, categoryID int64) (int, error)
	// CountByImage reports how many products reference the given image URL,
	// excluding the row with excludeID (pass 0 to exclude nothing).
	CountByImage(ctx context.Context, imageURL string, excludeID int64) (int, error)
}
