package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var errNoToken = errors.New("auth: no bearer token in Authorization header")

// contextKey is an unexported type used for context keys in this package.
//
// context.WithValue keys are compared by type AND value; a package-private
// type guarantees no other package can read or shadow what we store here.
type contextKey string

const identityKey contextKey = "identity"

const bearerPrefix = "bearer "

// RequireAuth enforces authentication on protected routes.
//
// It reads the token from the Authorization header ("bearer <token>", the
// scheme matched case-insensitively), validates it, and stores the decoded
// Identity in the request context. A missing, malformed, expired, or
// tampered token stops the chain with 401 before the handler runs.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := extractIdentity(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error":"unauthorized","message":"valid authentication token required"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the authenticated identity from the request
// context.
//
// Returns (Identity{}, false) if the request is anonymous. On routes behind
// RequireAuth it always returns (id, true).
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.ID != ""
}

// extractIdentity reads and validates the bearer token from the
// Authorization header.
func extractIdentity(r *http.Request, tokens *TokenService) (Identity, error) {
	header := r.Header.Get("Authorization")
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return Identity{}, errNoToken
	}

	return tokens.Validate(header[len(bearerPrefix):])
}
