// Package middleware provides HTTP middlewares for request logging, API key
// checks and storefront sessions.
package middleware

import (
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// HeaderRequestID is the request correlation header sent by the client.
const HeaderRequestID = "X-Request-ID"

// WithRequestLogging logs one line per request with its method, path,
// response status, size and duration. The client's X-Request-ID, when
// present, is attached so both sides of a call can be correlated.
func WithRequestLogging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", r.Header.Get(HeaderRequestID)),
			)
		})
	}
}
