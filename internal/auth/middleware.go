package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey int

const claimsContextKey contextKey = iota

// ContextWithClaims returns a new context carrying the given token claims.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext extracts token claims from the context, or nil if not
// present.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey).(*Claims)
	return claims
}

// Verifier validates bearer tokens. Satisfied by *Service.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// RequireAuth returns middleware that verifies the bearer token and injects
// its claims into the request context. Any valid role passes.
func RequireAuth(verifier Verifier) func(http.Handler) http.Handler {
	return requireClaims(verifier, "")
}

// RequireRole returns middleware that verifies the bearer token and denies
// with 403 when the role claim does not match.
func RequireRole(verifier Verifier, role string) func(http.Handler) http.Handler {
	return requireClaims(verifier, role)
}

func requireClaims(verifier Verifier, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractBearerToken(r)
			if token == "" {
				writeUnauthorized(w, "Missing or malformed authorization header")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				writeUnauthorized(w, "Invalid or expired token")
				return
			}
			if role != "" && claims.Role != role {
				writeForbidden(w, "Insufficient role")
				return
			}

			ctx := ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractBearerToken pulls the token out of the Authorization header, or ""
// when the header is absent or not a bearer scheme.
func ExtractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(messageResponse{Message: message})
}

func writeForbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(messageResponse{Message: message})
}
