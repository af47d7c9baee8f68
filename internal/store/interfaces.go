package store

import (
	"context"
	"time"

	"github.com/TuPhung369/PasswordEpic/models"
)

// EntryRepository persists the encrypted entry collection.
type EntryRepository interface {
	// LoadAll returns the stored entries in stored order. A missing
	// collection yields an empty slice; a malformed one yields
	// [ErrCorruptedData].
	LoadAll(ctx context.Context) ([]models.PersistedEntry, error)
	// Modify runs fn over the current collection inside a single
	// transaction and stores its result.
	Modify(ctx context.Context, fn func([]models.PersistedEntry) ([]models.PersistedEntry, error)) error
	ReplaceAll(ctx context.Context, entries []models.PersistedEntry) error
}

// CategoryRepository persists the category collection.
type CategoryRepository interface {
	// LoadAll returns the stored categories. found is false when the
	// collection has never been written.
	LoadAll(ctx context.Context) (categories []models.Category, found bool, err error)
	Modify(ctx context.Context, fn func([]models.Category, bool) ([]models.Category, error)) error
	ReplaceAll(ctx context.Context, categories []models.Category) error
}

// CredentialRepository persists the master secret verification material and
// the vault unlock flag.
type CredentialRepository interface {
	LoadVerification(ctx context.Context) (models.VerificationMaterial, error)
	SaveVerification(ctx context.Context, v models.VerificationMaterial) error
	SetLastVerified(ctx context.Context, at time.Time) error
	VaultUnlockEnabled(ctx context.Context) (bool, error)
	SetVaultUnlockEnabled(ctx context.Context, enabled bool) error
}

// KeyMaterialRepository reads and writes the components that historical
// versions mixed into the secret before key derivation.
type KeyMaterialRepository interface {
	Load(ctx context.Context) (models.KeyMaterial, error)
	// Save writes every non-empty component of km. Empty components are
	// left untouched.
	Save(ctx context.Context, km models.KeyMaterial) error
}
