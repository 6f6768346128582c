package redisclient

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/sensa-code/anesthesiamonitor/config"
)

// NewRedisClient 创建 Redis 客户端
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping 测试 Redis 连接
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}

// Close 关闭 Redis 连接
func Close(client *redis.Client) error {
	return client.Close()
}
