// Package redis provides a Redis-backed ActionStore, keeping the log as a
// Redis list so appends stay O(1) and ordering is native.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.ActionStore using Redis.
type Store struct {
	client *backend.Client
	key    string
	ttl    time.Duration
}

type Option func(*Store)

// WithKey sets the list key holding the log.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithTTL sets an expiration refreshed on every append.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		key:    "arbor:actions",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Append pushes one call at the tail of the list.
func (s *Store) Append(ctx context.Context, call domain.SerializedActionCall) error {
	data, err := json.Marshal(call)
	if err != nil {
		return fmt.Errorf("failed to marshal action call: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, s.key, data)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// List returns the full log in append order.
func (s *Store) List(ctx context.Context) ([]domain.SerializedActionCall, error) {
	entries, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read from redis: %w", err)
	}

	calls := make([]domain.SerializedActionCall, 0, len(entries))
	for i, raw := range entries {
		var call domain.SerializedActionCall
		if err := json.Unmarshal([]byte(raw), &call); err != nil {
			return nil, fmt.Errorf("failed to decode action log entry %d: %w", i, err)
		}
		calls = append(calls, call)
	}
	return calls, nil
}

// Clear deletes the list.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear redis log: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
