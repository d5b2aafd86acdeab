package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server configuration loaded from the environment
type Config struct {
	Host          string
	Port          int
	StorageType   string
	RedisURL      string
	SessionSecret string
	SessionTTL    time.Duration
}

// Load reads configuration from the environment, with a .env file picked
// up in dev
func Load() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		Host:          getEnv("EATERY_HOST", "0.0.0.0"),
		Port:          getEnvInt("EATERY_PORT", 8080),
		StorageType:   getEnv("STORAGE_TYPE", "memory"),
		RedisURL:      getEnv("REDIS_URL", ""),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvDuration("SESSION_TTL", 7*24*time.Hour),
	}
}

// Addr returns the listen address
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
