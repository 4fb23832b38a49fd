package handler

import (
	"net/http"
	"strconv"

	"github.com/mehendichic/mehendi-chic/internal/service"
)

// ContactHandler handles the public contact form and the admin inquiry list.
type ContactHandler struct {
	contacts *service.ContactService
	limiter  *service.TokenBucket
}

// NewContactHandler creates a new ContactHandler. Submissions are
// rate-limited per client address.
func NewContactHandler(contacts *service.ContactService, limiter *service.TokenBucket) *ContactHandler {
	return &ContactHandler{contacts: contacts, limiter: limiter}
}

// HandleSubmit records a public inquiry.
// POST /api/contact
// Request: {"name":"...","email":"...","phone":"...","message":"..."}
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientAddr(r)) {
		writeError(w, http.StatusTooManyRequests, "Too many submissions. Please wait and try again.")
		return
	}

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	submission, err := h.contacts.Add(r.Context(), req.Name, req.Email, req.Phone, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, submission)
}

// HandleList serves all inquiries, newest first.
// GET /api/admin/contacts
func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.contacts.List(r.Context()))
}

// HandleDelete removes an inquiry.
// DELETE /api/admin/contacts/{id}
func (h *ContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid contact ID.")
		return
	}

	if err := h.contacts.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
