package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/models"
)

type credentialRepository struct {
	kv     KeyValueStore
	logger *logger.Logger
}

func NewCredentialRepository(kv KeyValueStore, log *logger.Logger) CredentialRepository {
	log.Debug().Msg("creating credential repository")
	return &credentialRepository{kv: kv, logger: log}
}

// LoadVerification returns the stored hash, salt and last verification
// time. A missing or unreadable timestamp reads as never verified.
func (r *credentialRepository) LoadVerification(ctx context.Context) (models.VerificationMaterial, error) {
	log := logger.FromContext(ctx)

	hash, err := getString(ctx, r.kv, KeyMasterHash)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.LoadVerification").Msg("error reading hash")
		return models.VerificationMaterial{}, err
	}
	salt, err := getString(ctx, r.kv, KeyMasterSalt)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.LoadVerification").Msg("error reading salt")
		return models.VerificationMaterial{}, err
	}
	last, err := getString(ctx, r.kv, KeyMasterLastVerified)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.LoadVerification").Msg("error reading last verification time")
		return models.VerificationMaterial{}, err
	}

	v := models.VerificationMaterial{Hash: hash, Salt: salt}
	if last != "" {
		at, err := parseTimestamp(last)
		if err != nil {
			log.Warn().Err(err).Str("func", "*credentialRepository.LoadVerification").Msg("ignoring unreadable last verification time")
		} else {
			v.LastVerifiedAt = &at
		}
	}
	return v, nil
}

func (r *credentialRepository) SaveVerification(ctx context.Context, v models.VerificationMaterial) error {
	if err := setJSON(ctx, r.kv, KeyMasterHash, v.Hash); err != nil {
		return fmt.Errorf("save verification hash: %w", err)
	}
	if err := setJSON(ctx, r.kv, KeyMasterSalt, v.Salt); err != nil {
		return fmt.Errorf("save verification salt: %w", err)
	}
	if v.LastVerifiedAt != nil {
		return r.SetLastVerified(ctx, *v.LastVerifiedAt)
	}
	return nil
}

func (r *credentialRepository) SetLastVerified(ctx context.Context, at time.Time) error {
	if err := setJSON(ctx, r.kv, KeyMasterLastVerified, at.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("save last verification time: %w", err)
	}
	return nil
}

func (r *credentialRepository) VaultUnlockEnabled(ctx context.Context) (bool, error) {
	raw, err := getString(ctx, r.kv, KeyVaultUnlockEnabled)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*credentialRepository.VaultUnlockEnabled").Msg("error reading flag")
		return false, err
	}
	if raw == "" {
		return false, nil
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w: %q", KeyVaultUnlockEnabled, ErrCorruptedData, raw)
	}
	return enabled, nil
}

func (r *credentialRepository) SetVaultUnlockEnabled(ctx context.Context, enabled bool) error {
	if err := setJSON(ctx, r.kv, KeyVaultUnlockEnabled, enabled); err != nil {
		return fmt.Errorf("save vault unlock flag: %w", err)
	}
	return nil
}
