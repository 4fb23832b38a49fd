package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mehendichic/mehendi-chic/internal/domain"
	"github.com/mehendichic/mehendi-chic/internal/repository/sqlite"
)

func seedTestCategory(t *testing.T, db *sqlite.DB, name, image string) *domain.Category {
	t.Helper()
	c := &domain.Category{Name: name, Image: image}
	if err := db.Categories().Create(context.Background(), c); err != nil {
		t.Fatalf("seed category %q: %v", name, err)
	}
	return c
}

func TestCategoryRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := db.Categories()
	ctx := context.Background()

	c := &domain.Category{Name: "Bridal", Image: "http://localhost:8080/storage/v1/object/public/gallery/mehendi/category/a.jpg"}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if c.ID == 0 {
		t.Fatal("expected category ID to be set")
	}
	if c.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestCategoryRepository_Create_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	repo := db.Categories()
	ctx := context.Background()

	seedTestCategory(t, db, "Arabic", "")

	err := repo.Create(ctx, &domain.Category{Name: "Arabic"})
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestCategoryRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	repo := db.Categories()
	ctx := context.Background()

	seeded := seedTestCategory(t, db, "Festival", "")

	found, err := repo.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Name != "Festival" {
		t.Fatalf("expected name 'Festival', got %q", found.Name)
	}
	// NULL image should read back as empty string.
	if found.Image != "" {
		t.Fatalf("expected empty image, got %q", found.Image)
	}
}

func TestCategoryRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Categories().GetByID(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryRepository_GetByName(t *testing.T) {
	db := newTestDB(t)
	repo := db.Categories()
	ctx := context.Background()

	seeded := seedTestCategory(t, db, "Engagement", "")

	found, err := repo.GetByName(ctx, "Engagement")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if found.ID != seeded.ID {
		t.Fatalf("expected ID %d, got %d", seeded.ID, found.ID)
	}

	_, err = repo.GetByName(ctx, "Nonexistent")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryRepository_List(t *testing.T) {
	db := newTestDB(t)
	repo := db.Categories()
	ctx := context.Background()

	seedTestCategory(t, db, "Bridal", "")
	seedTestCategory(t, db, "Arabic", "")

	categories, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	// Newest first; equal timestamps fall back to descending ID.
	if categories[0].Name != "Arabic" {
		t.Fatalf("expected 'Arabic' first, got %q", categories[0].Name)
	}
}

func TestCategoryRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := db.Categories()
	ctx := context.Background()

	c := seedTestCategory(t, db, "Bridal", "old-url")

	c.Name = "Bridal Special"
	c.Image = "new-url"
	if err := repo.Update(ctx, c); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := repo.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Name != "Bridal Special" {
		t.Fatalf("expected updated name, got %q", found.Name)
	}
	if found.Image != "new-url" {
		t.Fatalf("expected updated image, got %q", found.Image)
	}
}

func TestCategoryRepository_Update_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Categories().Update(context.Background(), &domain.Category{ID: 99999, Name: "Ghost"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryRepository_Update_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	repo := db.Categories()
	ctx := context.Background()

	seedTestCategory(t, db, "Bridal", "")
	c := seedTestCategory(t, db, "Arabic", "")

	c.Name = "Bridal"
	err := repo.Update(ctx, c)
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestCategoryRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := db.Categories()
	ctx := context.Background()

	c := seedTestCategory(t, db, "Festival", "")

	if err := repo.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err := repo.GetByID(ctx, c.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCategoryRepository_Delete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Categories().Delete(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryRepository_CountByImage(t *testing.T) {
	db := newTestDB(t)
	repo := db.Categories()
	ctx := context.Background()

	url := "http://localhost:8080/storage/v1/object/public/gallery/mehendi/category/shared.jpg"
	a := seedTestCategory(t, db, "Bridal", url)
	seedTestCategory(t, db, "Arabic", url)
	seedTestCategory(t, db, "Festival", "other-url")

	// Excluding one holder leaves one other reference.
	count, err := repo.CountByImage(ctx, url, a.ID)
	if err != nil {
		t.Fatalf("CountByImage: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 reference, got %d", count)
	}

	count, err = repo.CountByImage(ctx, "unused-url", 0)
	if err != nil {
		t.Fatalf("CountByImage: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 references, got %d", count)
	}
}
