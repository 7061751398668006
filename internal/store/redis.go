package store

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

// RedisKV persists key-value pairs in Redis, for deployments that share
// learning state across hosts.
type RedisKV struct {
	client *goredis.Client
	prefix string
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

const redisOpTimeout = 5 * time.Second

// NewRedisKV connects to Redis and pings the server.
func NewRedisKV(cfg RedisConfig) (*RedisKV, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[INFO] redis store connected: %s", cfg.Addr)
	return &RedisKV{client: client, prefix: "bullscout:"}, nil
}

func (r *RedisKV) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	v, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err == goredis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return v, nil
}

func (r *RedisKV) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Close() error {
	log.Println("[INFO] closing redis store")
	return r.client.Close()
}
