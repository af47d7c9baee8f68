package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/internal/store"
	"github.com/TuPhung369/PasswordEpic/internal/validators"
	"github.com/TuPhung369/PasswordEpic/models"
)

type categoryService struct {
	categories store.CategoryRepository
	entries    store.EntryRepository
	validator  validators.Validator
	ids        IDGenerator

	now func() time.Time

	logger *logger.Logger
}

func NewCategoryService(storages *store.Storages, validator validators.Validator, ids IDGenerator, log *logger.Logger) CategoryService {
	return &categoryService{
		categories: storages.Categories,
		entries:    storages.Entries,
		validator:  validator,
		ids:        ids,
		now:        time.Now,
		logger:     log,
	}
}

// List returns the stored categories with any missing default added in
// front. Absent or unreadable storage yields the defaults alone.
func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	stored, _, err := s.categories.LoadAll(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrCorruptedData) {
			return nil, fail("list categories", ErrStorage, err)
		}
		logger.FromContext(ctx).Warn().Err(err).Msg("stored categories are unreadable, using defaults")
		stored = nil
	}
	return withDefaults(stored), nil
}

func (s *categoryService) Get(ctx context.Context, id string) (models.Category, bool, error) {
	all, err := s.List(ctx)
	if err != nil {
		return models.Category{}, false, err
	}
	idx := slices.IndexFunc(all, func(c models.Category) bool { return c.ID == id })
	if idx < 0 {
		return models.Category{}, false, nil
	}
	return all[idx], true, nil
}

func (s *categoryService) Create(ctx context.Context, category models.Category) (models.Category, error) {
	const op = "create category"

	if category.ID == "" {
		category.ID = s.ids.Generate()
	}
	category.Name = strings.TrimSpace(category.Name)
	if err := s.validator.Validate(ctx, category); err != nil {
		return models.Category{}, fail(op, ErrValidation, err)
	}
	category.CreatedAt = s.now()
	category.IsDefault = false

	err := s.categories.Modify(ctx, func(current []models.Category, _ bool) ([]models.Category, error) {
		all := withDefaults(current)
		if slices.ContainsFunc(all, func(c models.Category) bool { return c.ID == category.ID }) {
			return nil, fmt.Errorf("%w: %w: %q", ErrValidation, ErrCategoryExists, category.ID)
		}
		return append(all, category), nil
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return models.Category{}, fmt.Errorf("failed to %s: %w", op, err)
		}
		return models.Category{}, fail(op, ErrStorage, err)
	}
	return category, nil
}

// Update changes name, icon and color of an existing category.
func (s *categoryService) Update(ctx context.Context, category models.Category) error {
	const op = "update category"

	category.Name = strings.TrimSpace(category.Name)
	if err := s.validator.Validate(ctx, category); err != nil {
		return fail(op, ErrValidation, err)
	}

	err := s.categories.Modify(ctx, func(current []models.Category, _ bool) ([]models.Category, error) {
		all := withDefaults(current)
		idx := slices.IndexFunc(all, func(c models.Category) bool { return c.ID == category.ID })
		if idx < 0 {
			return nil, fmt.Errorf("%w: category %q", ErrNotFound, category.ID)
		}
		all[idx].Name = category.Name
		all[idx].Icon = category.Icon
		all[idx].Color = category.Color
		return all, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("failed to %s: %w", op, err)
		}
		return fail(op, ErrStorage, err)
	}
	return nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	const op = "delete category"
	log := logger.FromContext(ctx)

	if models.IsDefaultCategory(id) {
		return fail(op, ErrValidation, ErrDefaultCategory)
	}

	all, err := s.List(ctx)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(all, func(c models.Category) bool { return c.ID == id }) {
		return fail(op, ErrNotFound, fmt.Errorf("category %q", id))
	}

	// entries first: a crash in between leaves an empty category, never
	// entries pointing at a missing one
	moved := 0
	err = s.entries.Modify(ctx, func(list []models.PersistedEntry) ([]models.PersistedEntry, error) {
		now := s.now()
		for i := range list {
			if list[i].CategoryID == id {
				list[i].CategoryID = models.UncategorizedID
				list[i].UpdatedAt = now
				moved++
			}
		}
		if moved == 0 {
			return nil, errUnchanged
		}
		return list, nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return fail(op, ErrStorage, err)
	}
	if moved > 0 {
		log.Info().Str("category", id).Int("entries", moved).Msg("entries moved to uncategorized")
	}

	err = s.categories.Modify(ctx, func(current []models.Category, _ bool) ([]models.Category, error) {
		return slices.DeleteFunc(withDefaults(current), func(c models.Category) bool { return c.ID == id }), nil
	})
	if err != nil {
		return fail(op, ErrStorage, err)
	}
	return nil
}

func withDefaults(stored []models.Category) []models.Category {
	out := make([]models.Category, 0, len(stored)+len(models.DefaultCategories()))
	for _, d := range models.DefaultCategories() {
		d := d
		if !slices.ContainsFunc(stored, func(c models.Category) bool { return c.ID == d.ID }) {
			out = append(out, d)
		}
	}
	return append(out, stored...)
}
