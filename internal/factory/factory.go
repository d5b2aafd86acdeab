package factory

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/jkwan-hk/eatery/internal/dependencies/clock"
	"github.com/jkwan-hk/eatery/internal/services/auth"
	"github.com/jkwan-hk/eatery/internal/services/directory"
	"github.com/jkwan-hk/eatery/internal/session"
	"github.com/jkwan-hk/eatery/internal/storage"
	"github.com/jkwan-hk/eatery/internal/storage/memory"
	redisstorage "github.com/jkwan-hk/eatery/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Sessions
	Sessions *session.Manager

	// Services
	AuthService      *auth.Service
	DirectoryService *directory.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SessionSecret signs session tokens. If empty, a random secret is
	// generated; sessions then do not survive restarts
	SessionSecret string
	// SessionTTL is how long issued sessions stay valid
	// If zero, defaults to session.DefaultTTL
	SessionTTL time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	secret := cfg.SessionSecret
	if secret == "" {
		secret = randomSecret()
	}
	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = session.DefaultTTL
	}

	clk := clock.New()

	return newWithDependencies(store, clk, secret, ttl, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, secret string, ttl time.Duration, logger *slog.Logger) *App {
	sessions := session.NewManager(secret, ttl, clk)
	authService := auth.New(store, clk, logger)
	directoryService := directory.New(store, clk, logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		Sessions:         sessions,
		AuthService:      authService,
		DirectoryService: directoryService,
	}
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
