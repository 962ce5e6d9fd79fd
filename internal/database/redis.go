package database

import (
	"context"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/config"
	"github.com/go-redis/redis/v8"
)

// RedisClient stays nil when no cache is configured.
var RedisClient *redis.Client

func ConnectRedis(ctx context.Context, cfg *config.Config) error {
	if !cfg.RedisEnabled() {
		return nil
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisFullAddr(),
		Password: cfg.RedisPassword,
		DB:       0, // use default DB
	})

	_, err := RedisClient.Ping(ctx).Result()
	return err
}

func CloseRedis() error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Close()
}
