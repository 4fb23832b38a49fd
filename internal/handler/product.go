package handler

import (
	"net/http"
	"strconv"

	"github.com/mehendichic/mehendi-chic/internal/mirror"
	"github.com/mehendichic/mehendi-chic/internal/service"
)

// ProductHandler handles public product reads and admin product mutations.
type ProductHandler struct {
	products *service.ProductService
	mirror   *mirror.Mirror
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products *service.ProductService, m *mirror.Mirror) *ProductHandler {
	return &ProductHandler{products: products, mirror: m}
}

// HandleList serves the full product list from the mirror.
// GET /api/products
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.mirror.Products())
}

// HandleCreate processes a multipart product create with mirror staging.
// POST /api/admin/products (multipart: name, category_id, image?)
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	file, err := formImageFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload.")
		return
	}
	name := r.FormValue("name")
	categoryID, err := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID.")
		return
	}

	target := "product:create:" + name
	if !h.mirror.TryBegin(target) {
		writeError(w, http.StatusConflict, "This operation is already in progress.")
		return
	}
	defer h.mirror.End(target)

	corr := h.mirror.StageProduct(name, categoryID)
	product, err := h.products.Create(r.Context(), name, categoryID, file)
	if err != nil {
		h.mirror.Rollback(corr)
		writeServiceError(w, err)
		return
	}

	h.mirror.PromoteProduct(corr, *product)
	writeJSON(w, http.StatusCreated, product)
}

// HandleUpdate processes a multipart product update.
// PUT /api/admin/products/{id} (multipart: name, category_id, image?)
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID.")
		return
	}

	file, err := formImageFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload.")
		return
	}
	name := r.FormValue("name")
	categoryID, err := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID.")
		return
	}

	target := "product:" + strconv.FormatInt(id, 10)
	if !h.mirror.TryBegin(target) {
		writeError(w, http.StatusConflict, "This operation is already in progress.")
		return
	}
	defer h.mirror.End(target)

	product, err := h.products.Update(r.Context(), id, name, categoryID, file)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.mirror.ApplyProductUpdate(*product)
	writeJSON(w, http.StatusOK, product)
}

// HandleDelete removes a product. The mirror drops the row optimistically
// and restores it when the backing delete fails.
// DELETE /api/admin/products/{id}
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID.")
		return
	}

	target := "product:" + strconv.FormatInt(id, 10)
	if !h.mirror.TryBegin(target) {
		writeError(w, http.StatusConflict, "This operation is already in progress.")
		return
	}
	defer h.mirror.End(target)

	restore := h.mirror.RemoveProduct(id)
	product, err := h.products.Delete(r.Context(), id)
	if err != nil {
		restore()
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}
