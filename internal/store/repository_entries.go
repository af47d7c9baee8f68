package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/models"
)

// entryRepository keeps the whole entry collection as one JSON array under
// [KeyEntries]. The single-key layout is the export format; Modify makes
// each change to it one transaction.
type entryRepository struct {
	kv     KeyValueStore
	logger *logger.Logger
}

func NewEntryRepository(kv KeyValueStore, log *logger.Logger) EntryRepository {
	log.Debug().Msg("creating entry repository")
	return &entryRepository{kv: kv, logger: log}
}

func (r *entryRepository) LoadAll(ctx context.Context) ([]models.PersistedEntry, error) {
	log := logger.FromContext(ctx)

	entries := make([]models.PersistedEntry, 0)
	found, err := getJSON(ctx, r.kv, KeyEntries, &entries)
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.LoadAll").Msg("error loading entries")
		return nil, err
	}
	if !found || entries == nil {
		return []models.PersistedEntry{}, nil
	}
	return entries, nil
}

func (r *entryRepository) Modify(ctx context.Context, fn func([]models.PersistedEntry) ([]models.PersistedEntry, error)) error {
	log := logger.FromContext(ctx)

	err := r.kv.Update(ctx, KeyEntries, func(current []byte, exists bool) ([]byte, error) {
		entries := make([]models.PersistedEntry, 0)
		if exists {
			// never overwrite data that could not be read
			if err := decodeJSON(current, &entries); err != nil {
				return nil, err
			}
		}
		if entries == nil {
			entries = make([]models.PersistedEntry, 0)
		}

		next, err := fn(entries)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = make([]models.PersistedEntry, 0)
		}
		return json.Marshal(next)
	})
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.Modify").Msg("error modifying entries")
		return err
	}
	return nil
}

func (r *entryRepository) ReplaceAll(ctx context.Context, entries []models.PersistedEntry) error {
	if entries == nil {
		entries = make([]models.PersistedEntry, 0)
	}
	if err := setJSON(ctx, r.kv, KeyEntries, entries); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*entryRepository.ReplaceAll").Msg("error replacing entries")
		return fmt.Errorf("replace entries: %w", err)
	}
	return nil
}
