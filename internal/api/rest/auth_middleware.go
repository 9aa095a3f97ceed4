package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/auth"
)

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Authenticator guards routes by role
type Authenticator struct {
	tokens  TokenValidator
	enabled bool
	logger  *zap.Logger
}

// anonymousClaims stand in for the caller when authentication is switched off
var anonymousClaims = &auth.Claims{Name: "anonymous", Role: auth.RoleAdmin}

// NewAuthenticator creates an authenticator. With enabled false every request passes as an admin.
func NewAuthenticator(tokens TokenValidator, enabled bool, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{tokens: tokens, enabled: enabled, logger: logger}
}

// Require admits callers holding any of roles. No roles admits any authenticated caller.
func (a *Authenticator) Require(roles ...auth.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.enabled {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKeyClaims, anonymousClaims)))
				return
			}

			token := extractToken(r)
			if token == "" {
				writeUnauthorized(w, r, "missing bearer token")
				return
			}

			claims, err := a.tokens.ValidateToken(token)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, auth.ErrExpiredToken) {
					msg = "token expired"
				}
				a.logger.Debug("token rejected",
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.Error(err))
				writeUnauthorized(w, r, msg)
				return
			}

			if !claims.HasRole(roles...) {
				writeProblem(w, r, http.StatusForbidden, "FORBIDDEN", "role "+string(claims.Role)+" may not perform this action")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKeyClaims, claims)))
		})
	}
}

// extractToken reads the Authorization header, falling back to the token query
// parameter browsers use for websocket upgrades.
func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="fraudlens"`)
	writeProblem(w, r, http.StatusUnauthorized, "UNAUTHORIZED", message)
}
