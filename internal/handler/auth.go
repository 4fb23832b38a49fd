package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mehendichic/mehendi-chic/internal/domain"
	"github.com/mehendichic/mehendi-chic/internal/mirror"
	"github.com/mehendichic/mehendi-chic/internal/service"
)

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	auth         *service.AuthService
	mirror       *mirror.Mirror
	limiter      *service.TokenBucket
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler. Login attempts are rate-limited
// per client address through the given limiter.
func NewAuthHandler(auth *service.AuthService, m *mirror.Mirror, limiter *service.TokenBucket, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, mirror: m, limiter: limiter, cookieSecure: cookieSecure}
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientAddr(r)) {
		writeError(w, http.StatusTooManyRequests, "Too many login attempts. Please wait and try again.")
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		slog.Error("login", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})

	h.mirror.SetLoggedIn(true)
	writeJSON(w, http.StatusOK, map[string]any{"loggedIn": true})
}

// HandleLogout clears the session cookie. Content data stays in the mirror;
// only the login flag is cleared.
// POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	h.mirror.SetLoggedIn(false)
	writeJSON(w, http.StatusOK, map[string]any{"loggedIn": false})
}

// clientAddr keys the rate limiter; the remote address is good enough for a
// single-instance deployment.
func clientAddr(r *http.Request) string {
	return r.RemoteAddr
}
