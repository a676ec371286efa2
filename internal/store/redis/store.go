// Package redis stores documents as Redis string keys.
//
// Key layout:
//   - learnquest:doc:{key} -> raw JSON document
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "learnquest:doc:"

// Config holds Redis connection configuration.
type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns defaults for a local Redis.
func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:6379",
		PoolSize:     4,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Store implements store.Documents on Redis.
type Store struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Store{client: client}, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document %q: %w", key, err)
	}
	return b, nil
}

func (s *Store) Save(ctx context.Context, key string, body []byte) error {
	if err := s.client.Set(ctx, keyPrefix+key, body, 0).Err(); err != nil {
		return fmt.Errorf("save document %q: %w", key, err)
	}
	return nil
}
