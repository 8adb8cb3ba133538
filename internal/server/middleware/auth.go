package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/neisdata/neis/internal/service"
)

// RequireAPIKey returns an HTTP middleware that gates a route on a valid
// access token carried in the X-API-Key header. Validation sweeps expired
// tokens as a side effect, so expiry becomes observable here. Missing,
// unknown, and expired tokens all produce the same 401; the handler below
// never runs on failure.
func RequireAPIKey(authority *service.TokenAuthority) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" || !authority.Validate(key) {
				writeAuthError(w, http.StatusUnauthorized, "Invalid or expired API Key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOperator returns an HTTP middleware that gates a route on a valid
// operator JWT carried as an Authorization bearer token.
func RequireOperator(auth *service.OperatorAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "Operator token required")
				return
			}
			if _, err := auth.Validate(strings.TrimPrefix(header, "Bearer ")); err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Invalid operator token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeAuthError writes the standard error envelope. JSON is built by hand
// to avoid an import cycle with the handler package.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":{"code":%d,"message":%q}}`, status, message)
}
