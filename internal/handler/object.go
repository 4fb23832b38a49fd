package handler

import (
	"errors"
	"net/http"
	"os"

	"github.com/mehendichic/mehendi-chic/internal/domain"
	"github.com/mehendichic/mehendi-chic/internal/storage"
)

// ObjectHandler serves stored objects under their stable public URLs:
// GET /storage/v1/object/public/{bucket}/{key...}
type ObjectHandler struct {
	store *storage.DiskStore // nil when no object store is configured
}

// NewObjectHandler creates a new ObjectHandler. Pass a nil store when object
// storage is not configured; requests then report 503.
func NewObjectHandler(store *storage.DiskStore) *ObjectHandler {
	return &ObjectHandler{store: store}
}

// HandleServe streams the object bytes.
func (h *ObjectHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, domain.ErrNotConfigured.Error())
		return
	}

	bucket := r.PathValue("bucket")
	key := r.PathValue("key")

	path, err := h.store.Open(bucket, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Object not found.")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid object key.")
		return
	}

	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "Object not found.")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFile(w, r, path)
}
