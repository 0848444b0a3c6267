package services

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mediavault/mediavault-backend/internal/models"
)

const (
	accessTokenTTL       = 24 * time.Hour
	verificationTokenTTL = 5 * time.Minute
)

// AccessClaims are the identity claims carried by an access token.
type AccessClaims struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// VerificationClaims bind a one-time code to a principal for the short
// window of a verification flow, without any server-side pending-code
// storage.
type VerificationClaims struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
	jwt.RegisteredClaims
}

// TokenStatus is the outcome of Verify. Expiry is only set for valid
// tokens and is formatted as RFC 3339.
type TokenStatus struct {
	Valid  bool   `json:"valid"`
	Expiry string `json:"expiry,omitempty"`
}

// TokenService issues and verifies HS256-signed tokens. The signing secret
// is process-wide configuration, injected once at startup and never
// mutated. Tokens are stateless: a token stays valid until its expiry and
// cannot be revoked earlier.
type TokenService struct {
	secret          []byte
	accessTTL       time.Duration
	verificationTTL time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret:          []byte(secret),
		accessTTL:       accessTokenTTL,
		verificationTTL: verificationTokenTTL,
	}
}

// IssueAccessToken signs an access token for the user's profile claims.
func (s *TokenService) IssueAccessToken(user *models.User) (string, error) {
	now := time.Now().UTC()
	first, last := splitName(user.Name)

	claims := AccessClaims{
		FirstName: first,
		LastName:  last,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// IssueVerificationToken signs a 5-minute token embedding the given
// one-time code.
func (s *TokenService) IssueVerificationToken(user *models.User, otp string) (string, error) {
	now := time.Now().UTC()

	claims := VerificationClaims{
		Email: user.Email,
		OTP:   otp,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.verificationTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry in one pass. It never returns an
// error: a bad signature, malformed token or past expiry all collapse to
// Valid=false. Why verification failed is deliberately not exposed.
func (s *TokenService) Verify(tokenStr string) TokenStatus {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return TokenStatus{Valid: false}
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ExpiresAt == nil {
		return TokenStatus{Valid: false}
	}

	return TokenStatus{
		Valid:  true,
		Expiry: claims.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// splitName breaks a display name into first/last parts at the first
// space. A single-word name has no last part.
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}
