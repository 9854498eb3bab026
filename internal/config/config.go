// Package config loads the server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/gildedernacht/olymp/internal/model"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// Server is the configuration of olymp-server
type Server struct {
	Host string `env:"OLYMP_HOST"`
	Port int    `env:"OLYMP_PORT" envDefault:"8080"`

	StorageType string `env:"OLYMP_STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"OLYMP_REDIS_URL"    envDefault:"redis://localhost:6379"`
	SQLitePath  string `env:"OLYMP_SQLITE_PATH"  envDefault:"olymp.db"`

	RedisKeyPrefix string `env:"OLYMP_REDIS_KEY_PREFIX" envDefault:"olymp"`
	RedisPoolSize  int    `env:"OLYMP_REDIS_POOL_SIZE"  envDefault:"10"`

	AdminUser         string `env:"OLYMP_ADMIN_USER"`
	AdminPasswordHash string `env:"OLYMP_ADMIN_PASSWORD_HASH"`

	MaxBodyBytes int64 `env:"OLYMP_MAX_BODY_BYTES" envDefault:"100000"`

	// CatalogFile replaces the compiled-in catalog when set
	CatalogFile string `env:"OLYMP_CATALOG_FILE"`
	// RegistrationResource enables the seat limit check on one resource
	RegistrationResource string `env:"OLYMP_REGISTRATION_RESOURCE"`
}

// Load reads the server configuration from the process environment
func Load() (Server, error) {
	return parse(env.Options{})
}

// LoadFrom reads the server configuration from the given variables only
func LoadFrom(vars map[string]string) (Server, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Server, error) {
	var cfg Server
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot
func (c *Server) Validate() error {
	switch c.StorageType {
	case StorageTypeMemory, StorageTypeRedis, StorageTypeSQLite:
	default:
		return fmt.Errorf("OLYMP_STORAGE_TYPE must be memory, redis or sqlite, got %q", c.StorageType)
	}
	if c.StorageType == StorageTypeRedis && c.RedisPoolSize <= 0 {
		return fmt.Errorf("OLYMP_REDIS_POOL_SIZE must be positive, got %d", c.RedisPoolSize)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("OLYMP_MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.RegistrationResource != "" && !model.ValidUID(c.RegistrationResource) {
		return fmt.Errorf("OLYMP_REGISTRATION_RESOURCE must be %d lowercase hex characters", model.UIDLength)
	}
	if (c.AdminUser == "") != (c.AdminPasswordHash == "") {
		return fmt.Errorf("OLYMP_ADMIN_USER and OLYMP_ADMIN_PASSWORD_HASH must be set together")
	}
	return nil
}
