// Package config provides application configuration management.
// Configuration is loaded from environment variables once at start-up and
// treated as immutable afterwards.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// HTTP server
	Port int `env:"PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBName     string `env:"DB_NAME,required"`
	// RunMigrations enables gorm AutoMigrate on start-up.
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"false"`

	// Cache (Redis). The service runs uncached when Redis is unreachable.
	RedisHost     string        `env:"REDIS_HOST" envDefault:""`
	RedisPort     int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD" envDefault:""`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Tokens
	JWTSecret      string        `env:"JWT_SECRET,required"`
	JWTExpiration  time.Duration `env:"JWT_EXPIRATION" envDefault:"15m"`
	RememberMeKey  string        `env:"REMEMBER_ME_KEY,required"`
	CodeExpiration time.Duration `env:"VERIFICATION_CODE_EXPIRATION" envDefault:"15m"`

	// CORS: comma-separated list of allowed origins. Empty disables CORS handling.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`
}

// Load populates a Config from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.RememberMeKey) != 32 {
		return nil, fmt.Errorf("REMEMBER_ME_KEY must be exactly 32 bytes, got %d", len(cfg.RememberMeKey))
	}
	return cfg, nil
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// RedisAddr returns the Redis address, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// AllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) AllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))
	for _, origin := range origins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
