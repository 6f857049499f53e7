package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	_ "github.com/joho/godotenv/autoload"

	"lacongolaise/review-service/internal/utils/mongodb"
)

// Config holds all application configuration
type Config struct {
	MongoDB mongodb.Config
	Server  ServerConfig
	Cache   CacheConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        string   `env:"SERVER_PORT" envDefault:"8001"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// CacheConfig holds the optional Redis cache for review statistics.
// An empty RedisURL disables the cache.
type CacheConfig struct {
	RedisURL string        `env:"REDIS_URL"`
	StatsTTL time.Duration `env:"STATS_CACHE_TTL" envDefault:"30s"`
}

// NewConfig creates a new Config
func NewConfig() (*Config, error) {
	cfg := new(Config)
	err := env.Parse(cfg)

	return cfg, err
}
