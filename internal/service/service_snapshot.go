package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/internal/store"
	"github.com/TuPhung369/PasswordEpic/internal/validators"
	"github.com/TuPhung369/PasswordEpic/models"
)

type snapshotService struct {
	entries    store.EntryRepository
	categories store.CategoryRepository
	catalog    CategoryService
	validator  validators.Validator

	now func() time.Time

	logger *logger.Logger
}

func NewSnapshotService(storages *store.Storages, catalog CategoryService, validator validators.Validator, log *logger.Logger) SnapshotService {
	return &snapshotService{
		entries:    storages.Entries,
		categories: storages.Categories,
		catalog:    catalog,
		validator:  validator,
		now:        time.Now,
		logger:     log,
	}
}

func (s *snapshotService) Export(ctx context.Context) ([]byte, error) {
	const op = "export snapshot"

	entries, err := s.entries.LoadAll(ctx)
	if err != nil {
		return nil, fail(op, ErrStorage, err)
	}
	categories, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	blob, err := json.MarshalIndent(models.Snapshot{
		Passwords:     entries,
		Categories:    categories,
		ExportedAt:    s.now().UTC(),
		Version:       models.SnapshotVersion,
		StorageFormat: models.SnapshotStorageFormat,
	}, "", "  ")
	if err != nil {
		return nil, fail(op, ErrValidation, err)
	}

	logger.FromContext(ctx).Info().Int("entries", len(entries)).Msg("vault exported")
	return blob, nil
}

func (s *snapshotService) Import(ctx context.Context, blob []byte) error {
	const op = "import snapshot"
	log := logger.FromContext(ctx)

	var snapshot models.Snapshot
	if err := json.Unmarshal(blob, &snapshot); err != nil {
		log.Err(err).Str("func", "*snapshotService.Import").Msg("error decoding snapshot")
		return fail(op, ErrValidation, err)
	}
	if err := s.validator.Validate(ctx, snapshot); err != nil {
		log.Err(err).Str("func", "*snapshotService.Import").Msg("snapshot failed validation")
		return fail(op, ErrValidation, err)
	}

	for i := range snapshot.Passwords {
		if snapshot.Passwords[i].StorageVersion == 0 {
			snapshot.Passwords[i].StorageVersion = models.StorageVersion
		}
	}

	if err := s.entries.ReplaceAll(ctx, snapshot.Passwords); err != nil {
		return fail(op, ErrStorage, err)
	}
	if err := s.categories.ReplaceAll(ctx, withDefaults(snapshot.Categories)); err != nil {
		return fail(op, ErrStorage, err)
	}

	log.Info().Int("entries", len(snapshot.Passwords)).Msg("vault imported")
	return nil
}
