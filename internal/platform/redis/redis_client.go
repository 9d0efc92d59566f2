package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"timetrack_backend/internal/platform/config"
)

// NewRedisClient connects to the configured Redis instance and verifies the
// connection with a ping. Callers treat a failure as "run without cache".
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	addr := cfg.RedisAddr()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
