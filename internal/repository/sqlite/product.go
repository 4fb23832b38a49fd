package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mehendichic/mehendi-chic/internal/domain"
)

// ProductRepository implements domain.ProductRepository using SQLite.
type ProductRepository struct {
	db *sql.DB
}

var _ domain.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository creates a new SQLite-backed ProductRepository.
func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db.SqlDB}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO images (name, category_id, image_url, created_at) VALUES (?, ?, ?, ?)",
		product.Name, product.CategoryID, nullableString(product.Image), now,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	product.ID = id
	product.CreatedAt = now
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p := &domain.Product{}
	var image sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, category_id, image_url, created_at FROM images WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &p.CategoryID, &image, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query product by id: %w", err)
	}
	p.Image = image.String
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx,
		"SELECT id, name, category_id, image_url, created_at FROM images ORDER BY created_at DESC, id DESC")
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	return r.list(ctx,
		"SELECT id, name, category_id, image_url, created_at FROM images WHERE category_id = ? ORDER BY created_at DESC, id DESC",
		categoryID)
}

func (r *ProductRepository) list(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var image sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &image, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Image = image.String
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE images SET name = ?, category_id = ?, image_url = ? WHERE id = ?",
		product.Name, product.CategoryID, nullableString(product.Image), product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM images WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteByCategory(ctx context.Context, categoryID int64) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM images WHERE category_id = ?", categoryID)
	if err != nil {
		return 0, fmt.Errorf("delete products by category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(rows), nil
}

func (r *ProductRepository) CountByImage(ctx context.Context, imageURL string, excludeID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM images WHERE image_url = ? AND id != ?",
		imageURL, excludeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by image: %w", err)
	}
	return count, nil
}
