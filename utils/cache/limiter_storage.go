package cache

import (
	"context"
	"errors"
	"time"
)

const defaultLimiterPrefix = "unifriend:limiter:"

// Store is the subset of RedisCache the limiter storage needs
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// LimiterStorage adapts a Store to fiber.Storage so rate-limit counters are
// shared between instances.
type LimiterStorage struct {
	store   Store
	prefix  string
	timeout time.Duration
}

// NewLimiterStorage creates a fiber.Storage backed by store
func NewLimiterStorage(store Store) *LimiterStorage {
	return &LimiterStorage{store: store, prefix: defaultLimiterPrefix, timeout: time.Second}
}

func (s *LimiterStorage) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get returns nil without error when key is absent
func (s *LimiterStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := s.context()
	defer cancel()

	val, err := s.store.Get(ctx, s.prefix+key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return val, err
}

// Set stores val. A zero exp means no expiration.
func (s *LimiterStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.context()
	defer cancel()
	return s.store.Set(ctx, s.prefix+key, val, exp)
}

func (s *LimiterStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.context()
	defer cancel()
	return s.store.Delete(ctx, s.prefix+key)
}

// Reset drops every limiter key
func (s *LimiterStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*s.timeout)
	defer cancel()
	return s.store.DeletePrefix(ctx, s.prefix)
}

func (s *LimiterStorage) Close() error {
	return s.store.Close()
}
