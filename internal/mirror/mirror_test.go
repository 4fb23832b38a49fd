package mirror_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mehendichic/mehendi-chic/internal/domain"
	"github.com/mehendichic/mehendi-chic/internal/mirror"
)

func newTestMirror(t *testing.T) *mirror.Mirror {
	t.Helper()
	m, err := mirror.New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

// listRepo serves a canned category list to Refresh.
type listRepo struct {
	domain.CategoryRepository
	categories []domain.Category
	err        error
}

func (r *listRepo) List(ctx context.Context) ([]domain.Category, error) {
	return r.categories, r.err
}

// productListRepo serves a canned product list to Refresh.

type productListRepo struct {
	domain.ProductRepository
	products []domain.Product
	err      error
}

func (r *productListRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.products, r.err
}

func TestMirror_SeedsDemoContacts(t *testing.T) {
	m := newTestMirror(t)

	contacts := m.Contacts()
	if len(contacts) != 3 {
		t.Fatalf("expected 3 seeded contacts, got %d", len(contacts))
	}
	if contacts[0].Name != "Priya Sharma" {
		t.Fatalf("expected seeded contact first, got %q", contacts[0].Name)
	}
}

func TestMirror_Refresh(t *testing.T) {
	m := newTestMirror(t)

	cats := &listRepo{categories: []domain.Category{{ID: 1, Name: "Bridal"}}}
	prods := &productListRepo{products: []domain.Product{{ID: 1, Name: "Peacock Motif", CategoryID: 1}}}

	if err := m.Refresh(context.Background(), cats, prods); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(m.Categories()) != 1 {
		t.Fatalf("expected 1 category, got %d", len(m.Categories()))
	}
	if len(m.Products()) != 1 {
		t.Fatalf("expected 1 product, got %d", len(m.Products()))
	}
	// Contacts are untouched by a refresh.
	if len(m.Contacts()) != 3 {
		t.Fatalf("expected contacts untouched, got %d", len(m.Contacts()))
	}
}

func TestMirror_Refresh_Error(t *testing.T) {
	m := newTestMirror(t)

	cats := &listRepo{err: errors.New("db down")}
	prods := &productListRepo{}

	if err := m.Refresh(context.Background(), cats, prods); err == nil {
		t.Fatal("expected refresh error")
	}
}

func TestMirror_StagePromoteCategory(t *testing.T) {
	m := newTestMirror(t)

	corr := m.StageCategory("Bridal")
	staged := m.Categories()
	if len(staged) != 1 {
		t.Fatalf("expected 1 staged category, got %d", len(staged))
	}
	if staged[0].ID >= 0 {
		t.Fatalf("expected negative placeholder ID, got %d", staged[0].ID)
	}

	confirmed := domain.Category{ID: 7, Name: "Bridal", CreatedAt: time.Now()}
	m.PromoteCategory(corr, confirmed)

	got := m.Categories()
	if len(got) != 1 {
		t.Fatalf("expected 1 category after promote, got %d", len(got))
	}
	if got[0].ID != 7 {
		t.Fatalf("expected authoritative ID 7, got %d", got[0].ID)
	}
}

func TestMirror_StageRollbackCategory(t *testing.T) {
	m := newTestMirror(t)

	corr := m.StageCategory("Bridal")
	m.Rollback(corr)

	if got := m.Categories(); len(got) != 0 {
		t.Fatalf("expected empty list after rollback, got %d", len(got))
	}

	// A second rollback of the same correlation ID is a no-op.
	m.Rollback(corr)
}

func TestMirror_StagePromoteProduct(t *testing.T) {
	m := newTestMirror(t)

	corr := m.StageProduct("Peacock Motif", 3)
	if got := m.Products(); len(got) != 1 || got[0].ID >= 0 {
		t.Fatalf("unexpected staged products %+v", got)
	}

	m.PromoteProduct(corr, domain.Product{ID: 11, Name: "Peacock Motif", CategoryID: 3})
	got := m.Products()
	if len(got) != 1 || got[0].ID != 11 {
		t.Fatalf("unexpected products after promote %+v", got)
	}
}

func TestMirror_PromoteWrongKind(t *testing.T) {
	m := newTestMirror(t)

	corr := m.StageCategory("Bridal")
	// Promoting a category correlation as a product must not touch anything.
	m.PromoteProduct(corr, domain.Product{ID: 5})

	if got := m.Products(); len(got) != 0 {
		t.Fatalf("expected no products, got %d", len(got))
	}
	cats := m.Categories()
	if len(cats) != 1 || cats[0].ID >= 0 {
		t.Fatalf("expected category still staged, got %+v", cats)
	}
}

func TestMirror_StagedPlaceholderIDsAreDistinct(t *testing.T) {
	m := newTestMirror(t)

	m.StageCategory("A")
	m.StageCategory("B")

	got := m.Categories()
	if got[0].ID == got[1].ID {
		t.Fatalf("placeholder IDs must differ, both %d", got[0].ID)
	}
}

func TestMirror_ApplyUpdates(t *testing.T) {
	m := newTestMirror(t)

	corr := m.StageCategory("Bridal")
	m.PromoteCategory(corr, domain.Category{ID: 1, Name: "Bridal"})
	corr = m.StageProduct("Peacock Motif", 1)
	m.PromoteProduct(corr, domain.Product{ID: 2, Name: "Peacock Motif", CategoryID: 1})

	m.ApplyCategoryUpdate(domain.Category{ID: 1, Name: "Bridal Special"})
	if got := m.Categories(); got[0].Name != "Bridal Special" {
		t.Fatalf("category update not applied: %+v", got)
	}

	m.ApplyProductUpdate(domain.Product{ID: 2, Name: "Peacock Deluxe", CategoryID: 1})
	if got := m.Products(); got[0].Name != "Peacock Deluxe" {
		t.Fatalf("product update not applied: %+v", got)
	}
}

func TestMirror_RemoveProductRestore(t *testing.T) {
	m := newTestMirror(t)

	corr := m.StageProduct("Peacock Motif", 1)
	m.PromoteProduct(corr, domain.Product{ID: 5, Name: "Peacock Motif", CategoryID: 1})

	restore := m.RemoveProduct(5)
	if got := m.Products(); len(got) != 0 {
		t.Fatalf("expected product removed, got %d", len(got))
	}

	// The backing delete failed; the row comes back.
	restore()
	got := m.Products()
	if len(got) != 1 || got[0].ID != 5 {
		t.Fatalf("expected product restored, got %+v", got)
	}
}

func TestMirror_RemoveCategoryCascadeRestore(t *testing.T) {
	m := newTestMirror(t)

	corr := m.StageCategory("Bridal")
	m.PromoteCategory(corr, domain.Category{ID: 1, Name: "Bridal"})
	corr = m.StageProduct("Peacock Motif", 1)
	m.PromoteProduct(corr, domain.Product{ID: 2, Name: "Peacock Motif", CategoryID: 1})
	corr = m.StageProduct("Bold Floral", 9)
	m.PromoteProduct(corr, domain.Product{ID: 3, Name: "Bold Floral", CategoryID: 9})

	restore := m.RemoveCategoryCascade(1)
	if got := m.Categories(); len(got) != 0 {
		t.Fatalf("expected category removed, got %d", len(got))
	}
	// Only the products of the removed category disappear.
	got := m.Products()
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("expected unrelated product kept, got %+v", got)
	}

	restore()
	if got := m.Categories(); len(got) != 1 {
		t.Fatalf("expected category restored, got %d", len(got))
	}
	if got := m.Products(); len(got) != 2 {
		t.Fatalf("expected products restored, got %d", len(got))
	}
}

func TestMirror_ProductsByCategory(t *testing.T) {
	m := newTestMirror(t)

	corr := m.StageProduct("Peacock Motif", 1)
	m.PromoteProduct(corr, domain.Product{ID: 2, Name: "Peacock Motif", CategoryID: 1})
	corr = m.StageProduct("Bold Floral", 9)
	m.PromoteProduct(corr, domain.Product{ID: 3, Name: "Bold Floral", CategoryID: 9})

	got := m.ProductsByCategory(1)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected products %+v", got)
	}
}

func TestMirror_InFlightGuard(t *testing.T) {
	m := newTestMirror(t)

	if !m.TryBegin("category:1") {
		t.Fatal("first TryBegin should succeed")
	}
	if m.TryBegin("category:1") {
		t.Fatal("second TryBegin for the same target must fail")
	}
	// A different target is independent.
	if !m.TryBegin("category:2") {
		t.Fatal("TryBegin for another target should succeed")
	}

	m.End("category:1")
	if !m.TryBegin("category:1") {
		t.Fatal("TryBegin should succeed again after End")
	}
}

func TestMirror_Contacts(t *testing.T) {
	m := newTestMirror(t)

	sub := &domain.ContactSubmission{Name: "Kavya", Email: "k@example.com", Phone: "9876543210", Message: "Festival booking please."}
	m.AddContact(sub)

	if sub.ID == 0 {
		t.Fatal("expected ID to be assigned")
	}
	if sub.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be assigned")
	}

	contacts := m.Contacts()
	if len(contacts) != 4 {
		t.Fatalf("expected 4 contacts, got %d", len(contacts))
	}
	if contacts[0].ID != sub.ID {
		t.Fatal("expected new contact first")
	}

	if err := m.DeleteContact(sub.ID); err != nil {
		t.Fatalf("DeleteContact: %v", err)
	}
	if err := m.DeleteContact(sub.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMirror_PersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	m, err := mirror.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	corr := m.StageCategory("Bridal")
	m.PromoteCategory(corr, domain.Category{ID: 4, Name: "Bridal"})
	m.AddContact(&domain.ContactSubmission{Name: "Kavya", Email: "k@example.com", Phone: "9876543210", Message: "Festival booking please."})
	m.SetLoggedIn(true)
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := mirror.New(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	cats := reopened.Categories()
	if len(cats) != 1 || cats[0].Name != "Bridal" {
		t.Fatalf("categories not persisted: %+v", cats)
	}
	if len(reopened.Contacts()) != 4 {
		t.Fatalf("contacts not persisted, got %d", len(reopened.Contacts()))
	}
	if !reopened.LoggedIn() {
		t.Fatal("login flag not persisted")
	}
}
