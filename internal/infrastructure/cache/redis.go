package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minutetrack/minute-tracker/pkg/config"
)

// RedisClient wraps go-redis for job progress mirroring. The in-process job
// registry stays authoritative; Redis lets status polls survive restarts and
// serve multiple instances.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// SetJSON marshals the value and stores it with the given TTL.
func (r *RedisClient) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

// Close closes the underlying connection.
func (r *RedisClient) Close() error {
	return r.client.Close()
}
