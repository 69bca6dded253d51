package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/shubham-309/chatbot/internal/config"
	"github.com/shubham-309/chatbot/internal/logger"
)

// InitRedis initializes the Redis client. It returns nil when Redis is not
// configured or unreachable; callers treat a nil client as "no caching".
func InitRedis(ctx context.Context, cfg *config.Config, log logger.Logger) *redis.Client {
	if cfg.RedisHost == "" {
		log.Warn("Redis host not set, continuing without chat history caching")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	redisAddr := cfg.GetRedisAddr()
	log.Info("Connecting to Redis at ", redisAddr)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("Failed to connect to Redis: ", err)
		log.Warn("Application will continue without Redis caching")
		_ = redisClient.Close()
		return nil
	}

	log.Info("Successfully connected to Redis")
	return redisClient
}
