package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var vaultBucket = []byte("vault")

// boltKeyValueStore stores every key in one bbolt bucket. bbolt allows a
// single writer at a time, so db.Update gives Update its transaction.
type boltKeyValueStore struct {
	db *bbolt.DB
}

// NewBoltKeyValueStore opens the bbolt file at path, creating it and its
// parent directory when missing. openTimeout bounds the wait for the file
// lock held by another process.
func NewBoltKeyValueStore(path string, openTimeout time.Duration) (KeyValueStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create vault directory: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open vault database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(vaultBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create vault bucket: %w", err)
	}

	return &boltKeyValueStore{db: db}, nil
}

func (s *boltKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v, ok := lookup(tx.Bucket(vaultBucket), key)
		if !ok {
			return ErrKeyNotFound
		}
		// bbolt memory is only valid inside the transaction
		value = cloneBytes(v)
		return nil
	})
	if err != nil {
		return nil, boltError(err)
	}
	return value, nil
}

func (s *boltKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return boltError(s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(vaultBucket).Put([]byte(key), nonNil(value))
	}))
}

func (s *boltKeyValueStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return boltError(s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(vaultBucket).Delete([]byte(key))
	}))
}

func (s *boltKeyValueStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys := make([]string, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(vaultBucket).Cursor()
		p := []byte(prefix)
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, boltError(err)
	}
	return keys, nil
}

func (s *boltKeyValueStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return boltError(s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(vaultBucket)
		current, exists := lookup(b, key)

		next, err := fn(cloneBytes(current), exists)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), nonNil(next))
	}))
}

func (s *boltKeyValueStore) Close() error {
	return s.db.Close()
}

// lookup tells a missing key apart from a key holding an empty value.
func lookup(b *bbolt.Bucket, key string) ([]byte, bool) {
	k, v := b.Cursor().Seek([]byte(key))
	if k == nil || !bytes.Equal(k, []byte(key)) {
		return nil, false
	}
	return v, true
}

func boltError(err error) error {
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return ErrStoreClosed
	}
	return err
}

// bbolt treats a nil value as a missing key.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
