package middleware

import (
	"context"
	"net/http"

	"github.com/gildedernacht/olymp/internal/api/apierr"
	"github.com/gildedernacht/olymp/internal/services/auth"
)

type contextKey string

const adminContextKey contextKey = "admin"

// Admin marks requests carrying valid admin basic auth.
// Requests without or with wrong credentials continue as anonymous.
func Admin(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if username, password, ok := r.BasicAuth(); ok {
				if err := authService.Authenticate(username, password); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), adminContextKey, true))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects requests that Admin did not mark
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			apierr.WriteError(w, apierr.NewUnauthorizedError())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IsAdmin reports whether the request was authenticated as admin
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(adminContextKey).(bool)
	return admin
}
