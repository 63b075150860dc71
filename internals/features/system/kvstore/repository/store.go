// file: internals/features/system/kvstore/repository/store.go
package repository

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("kvstore: empty key")

// Store: key-value JSON; satu value = satu koleksi utuh.
// Tidak ada transaksi lintas key.
type Store interface {
	// Get decode value ke dst. found=false kalau key belum pernah diset.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
