package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/edvin/edgedomains/internal/api/response"
	"github.com/edvin/edgedomains/internal/model"
)

type contextKey string

// APIKeyIDKey holds the authenticated key's ID in the request context.
const APIKeyIDKey contextKey = "api_key_id"

// Authenticator resolves a raw API key. It is implemented by
// core.APIKeyService.
type Authenticator interface {
	Authenticate(ctx context.Context, rawKey string) (*model.APIKey, error)
}

// Auth returns a middleware that validates the X-API-Key header, or a bearer
// token, against the stored key hashes.
func Auth(keys Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				key = extractAPIKey(r)
			}
			if key == "" {
				response.WriteError(w, http.StatusUnauthorized, "missing API key")
				return
			}

			apiKey, err := keys.Authenticate(r.Context(), key)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "invalid API key")
				return
			}

			ctx := context.WithValue(r.Context(), APIKeyIDKey, apiKey.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractAPIKey(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
