package middleware

import (
	"net/http"

	"github.com/gildedernacht/olymp/internal/api/response"
)

// CORS allows the registration pages to call the API from any origin
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		h.Set("Access-Control-Allow-Methods", "GET,PUT,POST,DELETE")

		if r.Method == http.MethodOptions {
			response.NoContent(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
