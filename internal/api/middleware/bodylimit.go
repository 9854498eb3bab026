package middleware

import (
	"net/http"

	"github.com/gildedernacht/olymp/internal/api/apierr"
)

// BodyLimit caps request bodies at limit bytes.
// Declared oversize bodies are rejected up front; others fail while being read.
func BodyLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				apierr.WriteError(w, apierr.NewPayloadTooLargeError())
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
