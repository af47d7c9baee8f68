package store

import (
	"context"
	"fmt"

	"github.com/TuPhung369/PasswordEpic/internal/config"
	"github.com/TuPhung369/PasswordEpic/internal/logger"
)

// Storages groups every repository of the vault over one [KeyValueStore] so
// it can be passed to the service layer as a single value.
type Storages struct {
	KV KeyValueStore

	Entries     EntryRepository
	Categories  CategoryRepository
	Credentials CredentialRepository
	KeyMaterial KeyMaterialRepository
}

// NewStorages opens the backend selected by cfg.Driver and wires the
// repositories on top of it:
//   - "bolt": bbolt file at cfg.DSN (default);
//   - "sqlite": go-sqlite3 database at cfg.DSN, migrated with goose;
//   - "file": JSON state file at cfg.DSN, or memory only for ":memory:".
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("driver", cfg.Driver).Msg("creating new storages...")

	kv, err := Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return NewStoragesFromKV(kv, log), nil
}

// NewStoragesFromKV wires the repositories over an already opened store.
func NewStoragesFromKV(kv KeyValueStore, log *logger.Logger) *Storages {
	return &Storages{
		KV:          kv,
		Entries:     NewEntryRepository(kv, log),
		Categories:  NewCategoryRepository(kv, log),
		Credentials: NewCredentialRepository(kv, log),
		KeyMaterial: NewKeyMaterialRepository(kv, log),
	}
}

// Open returns the raw key/value backend for cfg.
func Open(ctx context.Context, cfg config.Storage, log *logger.Logger) (KeyValueStore, error) {
	switch cfg.Driver {
	case config.DriverBolt, "":
		kv, err := NewBoltKeyValueStore(cfg.DSN, cfg.OpenTimeout)
		if err != nil {
			log.Err(err).Str("func", "store.Open").Msg("error opening bolt store")
			return nil, fmt.Errorf("bolt store: %w", err)
		}
		return kv, nil

	case config.DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err = db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return NewSQLiteKeyValueStore(db, log), nil

	case config.DriverFile:
		kv, err := NewFileKeyValueStore(cfg.DSN)
		if err != nil {
			log.Err(err).Str("func", "store.Open").Msg("error opening file store")
			return nil, fmt.Errorf("file store: %w", err)
		}
		return kv, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

func (s *Storages) Close() error {
	return s.KV.Close()
}
