// Package cache provides the shared series-row cache behind the dashboard's
// backing sources, with in-memory, Redis and layered backends.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")

	errNotString = errors.New("cache: value must be string or []byte")
	errBadDest   = errors.New("cache: dest must be *string or *[]byte")
)

// Service is the operations a series cache backend must support. Values are
// stored as strings; callers marshal their payloads.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Close() error
}
