package store

//go:generate mockgen -source=kv.go -destination=../mock/key_value_store_mock.go -package=mock

import "context"

// UpdateFunc receives the current value of a key (nil and exists=false when
// absent) and returns the value to store. Returning an error aborts the
// update and leaves the key untouched.
type UpdateFunc func(current []byte, exists bool) ([]byte, error)

// KeyValueStore is the persistent byte store behind every repository.
//
// Update is a per-key transaction: the read, fn and the write happen
// atomically with respect to every other Update and Set on the same store,
// so two concurrent read-modify-write cycles cannot lose each other's
// changes.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys returns every stored key starting with prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}
