package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gildedernacht/olymp/internal/api/handler"
	"github.com/gildedernacht/olymp/internal/api/middleware"
	"github.com/gildedernacht/olymp/internal/dependencies/clock"
	"github.com/gildedernacht/olymp/internal/services/auth"
	"github.com/gildedernacht/olymp/internal/services/entries"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	Version      string
	Clock        clock.Clock
	AuthService  *auth.Service
	EntryService *entries.Service
	MaxBodyBytes int64
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	statusHandler := handler.NewStatusHandler(cfg.Version, cfg.Clock)
	entryHandler := handler.NewEntryHandler(cfg.EntryService)

	// Common middleware; Recovery sits inside Logging to see the request id
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Admin(cfg.AuthService))

	r.HandleFunc("/status", statusHandler.Get).Methods(http.MethodGet)

	resources := r.PathPrefix("/resources").Subrouter()
	resources.HandleFunc("", entryHandler.Resources).Methods(http.MethodGet)
	resources.HandleFunc("/{uid}/entries", entryHandler.List).Methods(http.MethodGet)
	resources.Handle("/{uid}/entries",
		middleware.BodyLimit(cfg.MaxBodyBytes)(http.HandlerFunc(entryHandler.Add))).Methods(http.MethodPost)
	resources.Handle("/{uid}/entries/{entryUid}",
		middleware.RequireAdmin(http.HandlerFunc(entryHandler.Get))).Methods(http.MethodGet)

	// CORS wraps the router so preflight requests never reach route matching
	return middleware.CORS(r)
}
