package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TuPhung369/PasswordEpic/internal/logger"
)

// sqliteKeyValueStore keeps the vault in the vault_kv table. Update runs in
// a database transaction; with the immediate locking DSN and a single open
// connection, transactions never interleave.
type sqliteKeyValueStore struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLiteKeyValueStore wraps an open, migrated connection.
func NewSQLiteKeyValueStore(db *DB, log *logger.Logger) KeyValueStore {
	log.Debug().Msg("creating sqlite key/value store")
	return &sqliteKeyValueStore{db: db, logger: log}
}

func (s *sqliteKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectValueQuery(key)
	if err != nil {
		log.Err(err).Str("func", "*sqliteKeyValueStore.Get").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	value, err := scanValue(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.Err(err).Str("func", "*sqliteKeyValueStore.Get").Str("key", key).Msg("error reading value")
		}
		return nil, err
	}
	return value, nil
}

func (s *sqliteKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	query, args, err := upsertValueQuery(key, value)
	if err != nil {
		log.Err(err).Str("func", "*sqliteKeyValueStore.Set").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sqliteKeyValueStore.Set").Str("key", key).Msg("error writing value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *sqliteKeyValueStore) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := deleteValueQuery(key)
	if err != nil {
		log.Err(err).Str("func", "*sqliteKeyValueStore.Delete").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sqliteKeyValueStore.Delete").Str("key", key).Msg("error deleting value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *sqliteKeyValueStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectKeysQuery(prefix)
	if err != nil {
		log.Err(err).Str("func", "*sqliteKeyValueStore.Keys").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqliteKeyValueStore.Keys").Msg("error listing keys")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err = rows.Scan(&k); err != nil {
			log.Err(err).Str("func", "*sqliteKeyValueStore.Keys").Msg("error scanning key")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		keys = append(keys, k)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return keys, nil
}

func (s *sqliteKeyValueStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	log := logger.FromContext(ctx)

	selectQuery, selectArgs, err := selectValueQuery(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*sqliteKeyValueStore.Update").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	current, err := scanValue(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
	exists := true
	switch {
	case errors.Is(err, ErrKeyNotFound):
		exists = false
	case err != nil:
		log.Err(err).Str("func", "*sqliteKeyValueStore.Update").Str("key", key).Msg("error reading value")
		return err
	}

	next, err := fn(current, exists)
	if err != nil {
		return err
	}

	upsertQuery, upsertArgs, err := upsertValueQuery(key, next)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		log.Err(err).Str("func", "*sqliteKeyValueStore.Update").Str("key", key).Msg("error writing value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*sqliteKeyValueStore.Update").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (s *sqliteKeyValueStore) Close() error {
	return s.db.Close()
}

func scanValue(row *sql.Row) ([]byte, error) {
	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, nil
}
