package domain

import "context"

// KVStore is a flat key-value persistence medium. Get returns ErrKeyNotFound for
// absent keys; Delete of an absent key is not an error.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
