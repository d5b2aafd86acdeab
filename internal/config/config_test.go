package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("EATERY_HOST", "127.0.0.1")
	t.Setenv("EATERY_PORT", "9090")
	t.Setenv("STORAGE_TYPE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("SESSION_TTL", "1h")

	cfg := Load()

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "redis", cfg.StorageType)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("EATERY_PORT", "not-a-port")
	t.Setenv("SESSION_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
}

func TestAddr(t *testing.T) {
	cfg := Config{Host: "localhost", Port: 9090}
	assert.Equal(t, "localhost:9090", cfg.Addr())
}
