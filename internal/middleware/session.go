package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionCookie is the cookie that identifies a storefront session.
const SessionCookie = "OCSESSID"

// SessionToucher records that a session was used.
type SessionToucher interface {
	Touch(ctx context.Context, id string)
}

// Session resolves the request's storefront session.
//
// The session id is read from the OCSESSID cookie. Requests without one get
// a freshly issued id, which is returned to the client in a Set-Cookie
// header. Every resolved session is touched in store so idle sessions can
// be swept, and the id is stored in the request context for handlers.
func Session(store SessionToucher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
				id = c.Value
			} else {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
				})
			}
			store.Touch(r.Context(), id)

			ctx := context.WithValue(r.Context(), sessionKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionID extracts the session id stored by Session.
// Returns an empty string if not found.
func GetSessionID(ctx context.Context) string {
	val := ctx.Value(sessionKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
