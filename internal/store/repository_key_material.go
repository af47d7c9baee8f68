package store

import (
	"context"
	"fmt"

	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/models"
)

type keyMaterialRepository struct {
	kv     KeyValueStore
	logger *logger.Logger
}

func NewKeyMaterialRepository(kv KeyValueStore, log *logger.Logger) KeyMaterialRepository {
	log.Debug().Msg("creating key material repository")
	return &keyMaterialRepository{kv: kv, logger: log}
}

// Load reads the four named components and every alternate salt. Alternate
// salts are returned in key order.
func (r *keyMaterialRepository) Load(ctx context.Context) (models.KeyMaterial, error) {
	log := logger.FromContext(ctx)

	var km models.KeyMaterial
	fields := []struct {
		key string
		dst *string
	}{
		{KeyLoginTimestamp, &km.LoginTimestamp},
		{KeySessionSalt, &km.SessionSalt},
		{KeyFixedSalt, &km.FixedSalt},
		{KeyUserUUID, &km.UserUUID},
	}
	for _, f := range fields {
		v, err := getString(ctx, r.kv, f.key)
		if err != nil {
			log.Err(err).Str("func", "*keyMaterialRepository.Load").Str("key", f.key).Msg("error reading key material")
			return models.KeyMaterial{}, err
		}
		*f.dst = v
	}

	keys, err := r.kv.Keys(ctx, AlternateSaltPrefix)
	if err != nil {
		log.Err(err).Str("func", "*keyMaterialRepository.Load").Msg("error listing alternate salts")
		return models.KeyMaterial{}, err
	}
	for _, k := range keys {
		if !IsAlternateSaltKey(k) {
			continue
		}
		v, err := getString(ctx, r.kv, k)
		if err != nil {
			log.Err(err).Str("func", "*keyMaterialRepository.Load").Str("key", k).Msg("error reading alternate salt")
			return models.KeyMaterial{}, err
		}
		km.AlternateSalts = append(km.AlternateSalts, models.AlternateSalt{Key: k, Value: v})
	}

	return km, nil
}

func (r *keyMaterialRepository) Save(ctx context.Context, km models.KeyMaterial) error {
	values := []struct{ key, value string }{
		{KeyLoginTimestamp, km.LoginTimestamp},
		{KeySessionSalt, km.SessionSalt},
		{KeyFixedSalt, km.FixedSalt},
		{KeyUserUUID, km.UserUUID},
	}
	for _, alt := range km.AlternateSalts {
		if !IsAlternateSaltKey(alt.Key) {
			return fmt.Errorf("alternate salt key %q must start with %q", alt.Key, AlternateSaltPrefix)
		}
		values = append(values, struct{ key, value string }{alt.Key, alt.Value})
	}

	for _, v := range values {
		if v.value == "" {
			continue
		}
		if err := setJSON(ctx, r.kv, v.key, v.value); err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*keyMaterialRepository.Save").Str("key", v.key).Msg("error writing key material")
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}
