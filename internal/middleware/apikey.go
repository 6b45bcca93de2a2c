package middleware

import (
	"crypto/subtle"
	"net/http"
)

// HeaderAPIKey carries the shared API key.
const HeaderAPIKey = "X-API-Key"

// APIKey rejects requests whose X-API-Key header does not match key with
// 401 and a JSON error body. An empty key disables the check.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(HeaderAPIKey)), []byte(key)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"success":false,"error":"Invalid API key"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
