package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/models"
)

type categoryRepository struct {
	kv     KeyValueStore
	logger *logger.Logger
}

func NewCategoryRepository(kv KeyValueStore, log *logger.Logger) CategoryRepository {
	log.Debug().Msg("creating category repository")
	return &categoryRepository{kv: kv, logger: log}
}

func (r *categoryRepository) LoadAll(ctx context.Context) ([]models.Category, bool, error) {
	categories := make([]models.Category, 0)
	found, err := getJSON(ctx, r.kv, KeyCategories, &categories)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*categoryRepository.LoadAll").Msg("error loading categories")
		return nil, found, err
	}
	if categories == nil {
		categories = make([]models.Category, 0)
	}
	return categories, found, nil
}

func (r *categoryRepository) Modify(ctx context.Context, fn func([]models.Category, bool) ([]models.Category, error)) error {
	err := r.kv.Update(ctx, KeyCategories, func(current []byte, exists bool) ([]byte, error) {
		categories := make([]models.Category, 0)
		if exists {
			if err := decodeJSON(current, &categories); err != nil {
				return nil, err
			}
		}

		next, err := fn(categories, exists)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = make([]models.Category, 0)
		}
		return json.Marshal(next)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*categoryRepository.Modify").Msg("error modifying categories")
		return err
	}
	return nil
}

func (r *categoryRepository) ReplaceAll(ctx context.Context, categories []models.Category) error {
	if categories == nil {
		categories = make([]models.Category, 0)
	}
	if err := setJSON(ctx, r.kv, KeyCategories, categories); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*categoryRepository.ReplaceAll").Msg("error replacing categories")
		return fmt.Errorf("replace categories: %w", err)
	}
	return nil
}
