// internal/kvstore/kvstore.go

// Package kvstore is the persistence port of the store dataset: a flat
// key-value contract with Postgres, Redis and in-memory backends.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("key not found")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
