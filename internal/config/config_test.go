package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StorageTypeMemory, cfg.StorageType)
	assert.Equal(t, int64(100000), cfg.MaxBodyBytes)
	assert.Empty(t, cfg.RegistrationResource)
	assert.Equal(t, "olymp", cfg.RedisKeyPrefix)
	assert.Equal(t, 10, cfg.RedisPoolSize)
}

func TestRedisSettings(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"OLYMP_STORAGE_TYPE":     "redis",
		"OLYMP_REDIS_URL":        "redis://cache:6379/2",
		"OLYMP_REDIS_KEY_PREFIX": "rpgdays",
		"OLYMP_REDIS_POOL_SIZE":  "4",
	})
	require.NoError(t, err)

	assert.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
	assert.Equal(t, "rpgdays", cfg.RedisKeyPrefix)
	assert.Equal(t, 4, cfg.RedisPoolSize)
}

func TestOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"OLYMP_PORT":                  "9000",
		"OLYMP_STORAGE_TYPE":          "sqlite",
		"OLYMP_SQLITE_PATH":           "/var/lib/olymp/olymp.db",
		"OLYMP_REGISTRATION_RESOURCE": strings.Repeat("ab", 32),
		"OLYMP_ADMIN_USER":            "admin",
		"OLYMP_ADMIN_PASSWORD_HASH":   "$2a$10$abc",
	})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, StorageTypeSQLite, cfg.StorageType)
	assert.Equal(t, "/var/lib/olymp/olymp.db", cfg.SQLitePath)
	assert.Equal(t, "admin", cfg.AdminUser)
}

func TestRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"port not a number": {"OLYMP_PORT": "http"},
		"unknown storage":   {"OLYMP_STORAGE_TYPE": "postgres"},
		"zero body limit":   {"OLYMP_MAX_BODY_BYTES": "0"},
		"bad resource":      {"OLYMP_REGISTRATION_RESOURCE": "registration"},
		"user without hash": {"OLYMP_ADMIN_USER": "admin"},
		"empty redis pool":  {"OLYMP_STORAGE_TYPE": "redis", "OLYMP_REDIS_POOL_SIZE": "0"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(vars)
			assert.Error(t, err)
		})
	}
}
