package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/assetverse/assetverse-backend/config"
)

var redisClient *redis.Client

// InitRedis connects the shared Redis client used by the rate limiter and the
// analytics cache.
func InitRedis(cfg *config.Config) error {
	addr := cfg.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient = nil
		return fmt.Errorf("redis ping failed: %w", err)
	}

	log.Println("✅ Connected to Redis at", addr)
	return nil
}

func RedisClient() *redis.Client {
	return redisClient
}
