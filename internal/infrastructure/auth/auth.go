// Package auth issues and validates the bearer tokens analysts and field agents use.
package auth

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role is what a token holder may do in the review workflow.
type Role string

const (
	RoleAnalyst Role = "analyst"
	RoleAgent   Role = "agent"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAnalyst || r == RoleAgent || r == RoleAdmin
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims represents JWT token claims
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// HasRole reports whether the holder has any of roles. Admin satisfies every role.
func (c *Claims) HasRole(roles ...Role) bool {
	if len(roles) == 0 || c.Role == RoleAdmin {
		return true
	}
	return slices.Contains(roles, c.Role)
}

// TokenService signs and verifies HS256 tokens
type TokenService struct {
	secret []byte
	issuer string
	expiry time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service. secret must be at least 32 bytes.
func NewTokenService(secret []byte, issuer string, expiry time.Duration) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, AuthError{Code: "WEAK_SECRET", Message: "jwt secret must be at least 32 bytes"}
	}
	if expiry <= 0 {
		expiry = 12 * time.Hour
	}
	return &TokenService{secret: secret, issuer: issuer, expiry: expiry, now: time.Now}, nil
}

// GenerateToken creates a signed token for subject with role.
func (s *TokenService) GenerateToken(subject, name string, role Role) (string, error) {
	if !role.IsValid() {
		return "", AuthError{Code: "INVALID_ROLE", Message: fmt.Sprintf("unknown role %q", role)}
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Name: name,
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken parses tokenString and checks signature, issuer, expiry and role.
func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	return claims, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e AuthError) Error() string {
	return e.Message
}
