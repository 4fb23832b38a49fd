package handler

import (
	"net/http"

	"github.com/mehendichic/mehendi-chic/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *AuthHandler,
	categories *CategoryHandler,
	products *ProductHandler,
	contacts *ContactHandler,
	objects *ObjectHandler,
	authService *service.AuthService,
) {
	// Public surface.
	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /api/categories", categories.HandleList)
	mux.HandleFunc("GET /api/categories/{id}/products", categories.HandleProducts)
	mux.HandleFunc("GET /api/products", products.HandleList)
	mux.HandleFunc("GET /api/services", HandleServices)
	mux.HandleFunc("POST /api/contact", contacts.HandleSubmit)
	mux.HandleFunc("GET /storage/v1/object/public/{bucket}/{key...}", objects.HandleServe)

	// Session.
	mux.HandleFunc("POST /api/auth/login", auth.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", auth.HandleLogout)

	// Admin surface, behind the session check.
	admin := http.NewServeMux()
	admin.HandleFunc("POST /api/admin/categories", categories.HandleCreate)
	admin.HandleFunc("PUT /api/admin/categories/{id}", categories.HandleUpdate)
	admin.HandleFunc("DELETE /api/admin/categories/{id}", categories.HandleDelete)
	admin.HandleFunc("POST /api/admin/products", products.HandleCreate)
	admin.HandleFunc("PUT /api/admin/products/{id}", products.HandleUpdate)
	admin.HandleFunc("DELETE /api/admin/products/{id}", products.HandleDelete)
	admin.HandleFunc("GET /api/admin/contacts", contacts.HandleList)
	admin.HandleFunc("DELETE /api/admin/contacts/{id}", contacts.HandleDelete)
	mux.Handle("/api/admin/", RequireAuth(authService, admin))
}
