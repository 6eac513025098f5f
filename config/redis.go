package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var RedisClient *redis.Client

// ConnectRedis parses the URL, pings the server and stores the client globally.
func ConnectRedis(ctx context.Context, redisURL string, log *zap.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)

	res, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("connected to redis", zap.String("ping", res), zap.String("addr", opt.Addr))

	RedisClient = client
	return client, nil
}
