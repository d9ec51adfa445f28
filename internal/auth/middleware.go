package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"finled/internal/core"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFrom extracts the identity resolved by the gate. The second return
// is false on any request that did not pass through Gate.Require.
func IdentityFrom(ctx context.Context) (core.Identity, bool) {
	id, ok := ctx.Value(identityKey).(core.Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given identity. Exposed for
// handler tests that bypass the HTTP gate.
func WithIdentity(ctx context.Context, id core.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Gate converts the Authorization header of an inbound request into a
// resolved identity, or short-circuits the request with 401. It runs before
// any ledger operation and never touches the store.
type Gate struct {
	tokens *TokenService
}

func NewGate(tokens *TokenService) *Gate {
	return &Gate{tokens: tokens}
}

// Require wraps a handler so it only runs with a verified identity attached
// to the request context.
func (g *Gate) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			reject(w, "No token, authorization denied")
			return
		}

		id, err := g.tokens.Verify(token)
		if err != nil {
			slog.WarnContext(r.Context(), "Token rejected",
				"error", err,
				"path", r.URL.Path)
			reject(w, "Token is not valid")
			return
		}

		next(w, r.WithContext(WithIdentity(r.Context(), id)))
	}
}

// bearerToken strips an optional "Bearer " prefix. A bare token without the
// scheme is accepted, matching the permissive header handling clients rely on.
func bearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func reject(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "error",
		"message": message,
	})
}
