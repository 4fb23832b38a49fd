package handler

import (
	"net/http"
	"strconv"

	"github.com/mehendichic/mehendi-chic/internal/mirror"
	"github.com/mehendichic/mehendi-chic/internal/service"
)

// CategoryHandler handles public category reads and admin category mutations.
type CategoryHandler struct {
	categories *service.CategoryService
	mirror     *mirror.Mirror
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService, m *mirror.Mirror) *CategoryHandler {
	return &CategoryHandler{categories: categories, mirror: m}
}

// HandleList serves the category list from the mirror.
// GET /api/categories
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.mirror.Categories())
}

// HandleProducts serves the products of one category from the mirror.
// GET /api/categories/{id}/products
func (h *CategoryHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID.")
		return
	}
	writeJSON(w, http.StatusOK, h.mirror.ProductsByCategory(id))
}

// HandleCreate processes a multipart category create: the row is staged in
// the mirror before the lifecycle call and promoted or rolled back on its
// outcome.
// POST /api/admin/categories (multipart: name, image?)
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	file, err := formImageFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload.")
		return
	}
	name := r.FormValue("name")

	target := "category:create:" + name
	if !h.mirror.TryBegin(target) {
		writeError(w, http.StatusConflict, "This operation is already in progress.")
		return
	}
	defer h.mirror.End(target)

	corr := h.mirror.StageCategory(name)
	category, err := h.categories.Create(r.Context(), name, file)
	if err != nil {
		h.mirror.Rollback(corr)
		writeServiceError(w, err)
		return
	}

	h.mirror.PromoteCategory(corr, *category)
	writeJSON(w, http.StatusCreated, category)
}

// HandleUpdate processes a multipart category update.
// PUT /api/admin/categories/{id} (multipart: name, image?)
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID.")
		return
	}

	file, err := formImageFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload.")
		return
	}
	name := r.FormValue("name")

	target := "category:" + strconv.FormatInt(id, 10)
	if !h.mirror.TryBegin(target) {
		writeError(w, http.StatusConflict, "This operation is already in progress.")
		return
	}
	defer h.mirror.End(target)

	category, err := h.categories.Update(r.Context(), id, name, file)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.mirror.ApplyCategoryUpdate(*category)
	writeJSON(w, http.StatusOK, category)
}

// HandleDelete cascades a category delete. The mirror drops the category and
// its products optimistically and is restored when the backing delete fails.
// DELETE /api/admin/categories/{id}
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID.")
		return
	}

	target := "category:" + strconv.FormatInt(id, 10)
	if !h.mirror.TryBegin(target) {
		writeError(w, http.StatusConflict, "This operation is already in progress.")
		return
	}
	defer h.mirror.End(target)

	restore := h.mirror.RemoveCategoryCascade(id)
	result, err := h.categories.Delete(r.Context(), id)
	if err != nil {
		restore()
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
