package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gildedernacht/olymp/internal/catalog"
	"github.com/gildedernacht/olymp/internal/config"
	"github.com/gildedernacht/olymp/internal/dependencies/clock"
	"github.com/gildedernacht/olymp/internal/dependencies/random"
	"github.com/gildedernacht/olymp/internal/services/auth"
	"github.com/gildedernacht/olymp/internal/services/entries"
	"github.com/gildedernacht/olymp/internal/storage"
	"github.com/gildedernacht/olymp/internal/storage/memory"
	redisstorage "github.com/gildedernacht/olymp/internal/storage/redis"
	sqlitestorage "github.com/gildedernacht/olymp/internal/storage/sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Catalog used by the seat limit check
	Catalog catalog.Store

	// Services
	AuthService  *auth.Service
	EntryService *entries.Service

	closer io.Closer
}

// Close releases the storage connection, if any
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// New creates a new application with all dependencies wired
func New(cfg config.Server, logger *slog.Logger) (*App, error) {
	// Use no-op logger if not provided
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, closer, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	cat := catalog.Store(catalog.Default())
	if cfg.CatalogFile != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			if closer != nil {
				_ = closer.Close()
			}
			return nil, err
		}
		cat = loaded
	}

	authService := auth.New(auth.Config{
		Username:     cfg.AdminUser,
		PasswordHash: cfg.AdminPasswordHash,
	})

	app := newWithDependencies(store, clock.New(), random.New(), cat, authService, cfg.RegistrationResource, logger)
	app.closer = closer
	return app, nil
}

func newStorage(cfg config.Server) (storage.Storage, io.Closer, error) {
	switch cfg.StorageType {
	case config.StorageTypeMemory, "":
		return memory.New(), nil, nil
	case config.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.KeyPrefix = cfg.RedisKeyPrefix
		redisCfg.PoolSize = cfg.RedisPoolSize
		store, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return store, store, nil
	case config.StorageTypeSQLite:
		store, err := sqlitestorage.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	cat catalog.Store,
	authService *auth.Service,
	registrationResource string,
	logger *slog.Logger,
) *App {
	var guard *entries.Guard
	if registrationResource != "" {
		guard = entries.NewGuard(registrationResource, cat)
	}

	return &App{
		Storage:      store,
		Clock:        clk,
		Random:       rnd,
		Catalog:      cat,
		AuthService:  authService,
		EntryService: entries.New(store, clk, rnd, guard, logger),
	}
}
