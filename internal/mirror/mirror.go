// Package mirror holds the locally persisted, optimistically updated view of
// the content lists. Mutations are staged before the backing store confirms
// them and then promoted or rolled back; every list change is re-persisted
// to its snapshot file so the data survives restarts even when the database
// is unavailable at startup.
package mirror

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mehendichic/mehendi-chic/internal/domain"
)

// EntryState tracks a staged entity through the two-phase apply.
type EntryState int

const (
	StateStaged EntryState = iota
	StateConfirmed
	StateRolledBack
)

type stagedEntry struct {
	state  EntryState
	kind   string // "category" or "product"
	tempID int64
}

// Mirror is the state owner for the UI-visible lists. It is constructed once
// at startup and torn down with Close; all access is behind its mutex.
type Mirror struct {
	mu         sync.Mutex
	snapshots  *snapshotStore
	categories []domain.Category
	products   []domain.Product
	contacts   []domain.ContactSubmission
	loggedIn   bool
	staged     map[string]*stagedEntry
	inflight   map[string]struct{}
	nextTempID int64
}

// New loads the persisted snapshot from dir (creating it if needed) and
// seeds demo contact submissions on first run. The snapshot is only a
// fallback: Refresh replaces categories and products with the backing
// store's contents once it answers.
func New(dir string) (*Mirror, error) {
	snapshots, err := newSnapshotStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	m := &Mirror{
		snapshots:  snapshots,
		staged:     make(map[string]*stagedEntry),
		inflight:   make(map[string]struct{}),
		nextTempID: -1,
	}

	if err := snapshots.load(keyCategories, &m.categories); err != nil {
		return nil, err
	}
	if err := snapshots.load(keyProducts, &m.products); err != nil {
		return nil, err
	}
	if err := snapshots.load(keyLogin, &m.loggedIn); err != nil {
		return nil, err
	}

	loaded, err := snapshots.loadIfPresent(keyContacts, &m.contacts)
	if err != nil {
		return nil, err
	}
	if !loaded {
		m.contacts = demoContacts()
		m.persistContacts()
	}

	return m, nil
}

// Close flushes every list to its snapshot file.
func (m *Mirror) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistCategories()
	m.persistProducts()
	m.persistContacts()
	m.persistLogin()
	return nil
}

// Refresh replaces categories and products with the backing repositories'
// current contents. Contacts are mirror-only and never refreshed.
func (m *Mirror) Refresh(ctx context.Context, categories domain.CategoryRepository, products domain.ProductRepository) error {
	cats, err := categories.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh categories: %w", err)
	}
	prods, err := products.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh products: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = cats
	m.products = prods
	m.persistCategories()
	m.persistProducts()
	return nil
}

// Categories returns a copy of the category list.
func (m *Mirror) Categories() []domain.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Category(nil), m.categories...)
}

// Products returns a copy of the product list.
func (m *Mirror) Products() []domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Product(nil), m.products...)
}

// ProductsByCategory returns the products belonging to one category.
func (m *Mirror) ProductsByCategory(categoryID int64) []domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// TryBegin registers an in-flight lifecycle operation for target. It returns
// false when one is already outstanding, guarding against duplicate-click
// double submission. Callers must End the target afterwards.
func (m *Mirror) TryBegin(target string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.inflight[target]; busy {
		return false
	}
	m.inflight[target] = struct{}{}
	return true
}

// End clears the in-flight marker for target.
func (m *Mirror) End(target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inflight, target)
}

// StageCategory inserts a placeholder category ahead of the backing call and
// returns a correlation ID for the later Promote or Rollback. Placeholder
// IDs are negative so they can never collide with real rowids.
func (m *Mirror) StageCategory(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	corr := uuid.NewString()
	tempID := m.nextTempID
	m.nextTempID--

	m.categories = append([]domain.Category{{ID: tempID, Name: name, CreatedAt: time.Now()}}, m.categories...)
	m.staged[corr] = &stagedEntry{state: StateStaged, kind: "category", tempID: tempID}
	m.persistCategories()
	return corr
}

// StageProduct inserts a placeholder product and returns its correlation ID.
func (m *Mirror) StageProduct(name string, categoryID int64) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	corr := uuid.NewString()
	tempID := m.nextTempID
	m.nextTempID--

	m.products = append([]domain.Product{{ID: tempID, Name: name, CategoryID: categoryID, CreatedAt: time.Now()}}, m.products...)
	m.staged[corr] = &stagedEntry{state: StateStaged, kind: "product", tempID: tempID}
	m.persistProducts()
	return corr
}

// PromoteCategory replaces the staged placeholder with the authoritative row.
func (m *Mirror) PromoteCategory(corr string, confirmed domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := m.takeStaged(corr, "category")
	if entry == nil {
		return
	}
	entry.state = StateConfirmed
	for i := range m.categories {
		if m.categories[i].ID == entry.tempID {
			m.categories[i] = confirmed
			break
		}
	}
	m.persistCategories()
}

// PromoteProduct replaces the staged placeholder with the authoritative row.
func (m *Mirror) PromoteProduct(corr string, confirmed domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := m.takeStaged(corr, "product")
	if entry == nil {
		return
	}
	entry.state = StateConfirmed
	for i := range m.products {
		if m.products[i].ID == entry.tempID {
			m.products[i] = confirmed
			break
		}
	}
	m.persistProducts()
}

// Rollback removes the staged placeholder after a failed backing call.
func (m *Mirror) Rollback(corr string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.staged[corr]
	if !ok {
		return
	}
	delete(m.staged, corr)
	entry.state = StateRolledBack

	switch entry.kind {
	case "category":
		m.categories = deleteByID(m.categories, entry.tempID, func(c domain.Category) int64 { return c.ID })
		m.persistCategories()
	case "product":
		m.products = deleteByID(m.products, entry.tempID, func(p domain.Product) int64 { return p.ID })
		m.persistProducts()
	}
}

// ApplyCategoryUpdate patches a confirmed category row into the list.
func (m *Mirror) ApplyCategoryUpdate(confirmed domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.categories {
		if m.categories[i].ID == confirmed.ID {
			m.categories[i] = confirmed
			break
		}
	}
	m.persistCategories()
}

// ApplyProductUpdate patches a confirmed product row into the list.
func (m *Mirror) ApplyProductUpdate(confirmed domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == confirmed.ID {
			m.products[i] = confirmed
			break
		}
	}
	m.persistProducts()
}

// RemoveProduct optimistically drops a product ahead of the backing delete.
// The returned restore closure reverts the removal when the delete fails.
func (m *Mirror) RemoveProduct(id int64) (restore func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := m.products
	m.products = deleteByID(m.products, id, func(p domain.Product) int64 { return p.ID })
	m.persistProducts()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.products = removed
		m.persistProducts()
	}
}

// RemoveCategoryCascade optimistically drops a category and every product
// referencing it. The restore closure reverts both lists.
func (m *Mirror) RemoveCategoryCascade(id int64) (restore func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prevCategories := m.categories
	prevProducts := m.products

	m.categories = deleteByID(m.categories, id, func(c domain.Category) int64 { return c.ID })
	var kept []domain.Product
	for _, p := range m.products {
		if p.CategoryID != id {
			kept = append(kept, p)
		}
	}
	m.products = kept
	m.persistCategories()
	m.persistProducts()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.categories = prevCategories
		m.products = prevProducts
		m.persistCategories()
		m.persistProducts()
	}
}

// AddContact records a submission, assigning its ID and timestamp.
func (m *Mirror) AddContact(submission *domain.ContactSubmission) {
	m.mu.Lock()
	defer m.mu.Unlock()

	submission.ID = time.Now().UnixMilli()
	for _, c := range m.contacts {
		if c.ID >= submission.ID {
			submission.ID = c.ID + 1
		}
	}
	submission.CreatedAt = time.Now()
	m.contacts = append([]domain.ContactSubmission{*submission}, m.contacts...)
	m.persistContacts()
}

// DeleteContact removes a submission. There is no backing store to follow up
// with; the mirror is the system of record for contacts.
func (m *Mirror) DeleteContact(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := len(m.contacts)
	m.contacts = deleteByID(m.contacts, id, func(c domain.ContactSubmission) int64 { return c.ID })
	if len(m.contacts) == before {
		return domain.ErrNotFound
	}
	m.persistContacts()
	return nil
}

// Contacts returns a copy of the submission list.
func (m *Mirror) Contacts() []domain.ContactSubmission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ContactSubmission(nil), m.contacts...)
}

// SetLoggedIn records the admin login flag.
func (m *Mirror) SetLoggedIn(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loggedIn = v
	m.persistLogin()
}

// LoggedIn reports the persisted admin login flag.
func (m *Mirror) LoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loggedIn
}

// takeStaged pops a staged entry of the expected kind; callers hold the lock.
func (m *Mirror) takeStaged(corr, kind string) *stagedEntry {
	entry, ok := m.staged[corr]
	if !ok || entry.kind != kind {
		return nil
	}
	delete(m.staged, corr)
	return entry
}

func deleteByID[T any](list []T, id int64, idOf func(T) int64) []T {
	out := list[:0:0]
	for _, item := range list {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}

// demoContacts are the seed inquiries shown before any real submission
// arrives.
func demoContacts() []domain.ContactSubmission {
	return []domain.ContactSubmission{
		{
			ID:        1,
			Name:      "Priya Sharma",
			Email:     "priya@example.com",
			Phone:     "+91 98765 43210",
			Message:   "I would like to book mehendi for my wedding on 15th March. Please share your packages.",
			CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        2,
			Name:      "Anjali Patel",
			Email:     "anjali.patel@email.com",
			Phone:     "+91 87654 32109",
			Message:   "Looking for bridal mehendi services. Can you provide home service?",
			CreatedAt: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        3,
			Name:      "Meera Gupta",
			Email:     "meera.g@email.com",
			Phone:     "+91 76543 21098",
			Message:   "Need arabic mehendi design for engagement ceremony. Budget around 5000 INR.",
			CreatedAt: time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC),
		},
	}
}
