package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gildedernacht/olymp/internal/api/apierr"
	"github.com/gildedernacht/olymp/internal/middleware"
)

// Recovery answers a panicking request with a JSON INTERNAL_ERROR
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewInternalError())
}
