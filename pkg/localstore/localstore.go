package localstore

import (
	"context"
	"errors"
)

// Store is the terminal-local persistence port. Keys are scoped per merchant
// so a server-backed implementation can be substituted without touching
// callers. Values are opaque JSON blobs owned by the calling component.
type Store interface {
	Get(ctx context.Context, merchantID, key string) ([]byte, error)
	Set(ctx context.Context, merchantID, key string, value []byte) error
	List(ctx context.Context, merchantID string) ([]string, error)
	Delete(ctx context.Context, merchantID, key string) error
}

var ErrNotFound = errors.New("localstore: key not found")
