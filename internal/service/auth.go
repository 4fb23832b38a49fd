package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mehendichic/mehendi-chic/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 24 * time.Hour

// adminSubject is the JWT subject for the single admin identity.
const adminSubject = "admin"

// AuthService checks the configured admin credential and issues session
// tokens. There is no user store: a single admin email/password pair comes
// from configuration, which is all the system requires.
type AuthService struct {
	adminEmail   string
	passwordHash []byte
	jwtSecret    []byte
}

var _ Authorizer = (*AuthService)(nil)

// NewAuthService creates an AuthService for the given admin credential.
// The password is bcrypt-hashed once up front so the plaintext is not kept
// around for comparisons.
func NewAuthService(adminEmail, adminPassword, jwtSecret string, bcryptCost int) (*AuthService, error) {
	if adminEmail == "" || adminPassword == "" {
		return nil, fmt.Errorf("admin email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	return &AuthService{
		adminEmail:   adminEmail,
		passwordHash: hash,
		jwtSecret:    []byte(jwtSecret),
	}, nil
}

// Login verifies the credential pair and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if !strings.EqualFold(strings.TrimSpace(email), s.adminEmail) {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   adminSubject,
		"email": s.adminEmail,
		"iat":   now.Unix(),
		"exp":   now.Add(sessionDuration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a session token string.
func (s *AuthService) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub != adminSubject {
		return domain.ErrUnauthorized
	}

	return nil
}

// ValidatePermissions gates destructive admin operations. It currently
// always authorizes; the seam exists so real authorization can slot in
// without touching the lifecycle services.
func (s *AuthService) ValidatePermissions(ctx context.Context) error {
	return nil
}
