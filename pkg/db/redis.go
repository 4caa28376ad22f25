package db

import (
	"github.com/redis/go-redis/v9"

	"example.com/fulfillment-system/pkg/config"
)

// ConnectRedis создаёт клиент Redis (транспорт stream'ов саги).
func ConnectRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
