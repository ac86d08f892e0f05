// Package redis keeps documents as plain string keys in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"festive-foliage/core"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "festive:"

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewStore connects to redisURL and checks the connection.
func NewStore(redisURL string) (*redisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewStoreWithClient(client), nil
}

// NewStoreWithClient creates a store from an existing Redis client.
func NewStoreWithClient(client *redis.Client) *redisStore {
	return &redisStore{
		client: client,
		prefix: defaultPrefix,
	}
}

func (s *redisStore) key(name string) string {
	return s.prefix + name
}

func (s *redisStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", core.ErrDocumentNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", name, err)
	}
	return data, nil
}

func (s *redisStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("save document %s: %w", name, err)
	}
	return nil
}

// Close closes the Redis connection
func (s *redisStore) Close() error {
	return s.client.Close()
}
