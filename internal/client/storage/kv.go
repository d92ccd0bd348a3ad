package storage

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("storage closed")

// PersistentKV is the capability the client stores depend on.
type PersistentKV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Resettable is implemented by stores that can enumerate and wipe their keys.
type Resettable interface {
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
