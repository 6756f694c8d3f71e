package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent
var ErrCacheMiss = errors.New("cache miss")

// Service is a JSON value cache keyed by string
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
	Ping(ctx context.Context) error
}

// Noop is a Service that never stores anything. Every Get is a miss.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string, dest interface{}) error { return ErrCacheMiss }

func (Noop) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (Noop) Delete(ctx context.Context, key string) error { return nil }

func (Noop) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (Noop) Ping(ctx context.Context) error { return nil }
