package service

import (
	"context"

	"github.com/TuPhung369/PasswordEpic/models"
)

// IDGenerator issues identifiers for new entries and categories.
type IDGenerator interface {
	Generate() string
}

// AppInfoService exposes build metadata of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// CredentialVerifier proves possession of the master secret without storing
// it, enforces the re-verification cadence and brokers unlock through the
// credential vault.
type CredentialVerifier interface {
	// StoreMasterSecret stores a fresh verification hash of secret. With
	// enableVaultUnlock the raw secret is also put into the credential
	// vault and vault unlock is switched on.
	StoreMasterSecret(ctx context.Context, secret string, enableVaultUnlock bool) error

	// VerifySecret checks secret against the stored hash and records the
	// verification time on success. A mismatch changes nothing.
	VerifySecret(ctx context.Context, secret string) error

	// IsReverificationRequired reports whether the secret must be typed in
	// again: never verified, or verified at least seven days ago.
	IsReverificationRequired(ctx context.Context) (bool, error)

	// UnlockViaVault reads the master secret from the credential vault.
	UnlockViaVault(ctx context.Context) models.UnlockResult

	DisableVaultUnlock(ctx context.Context) error
	IsVaultUnlockEnabled(ctx context.Context) (bool, error)
}

// EntryStore is CRUD over field-encrypted entries. Only the password is
// encrypted; every other field is readable without the secret, so
// metadata-only reads do not take it.
type EntryStore interface {
	// Initialize checks that verification material exists and that secret
	// matches it, and seeds the default categories.
	Initialize(ctx context.Context, secret string) error

	// Save creates or replaces an entry. The stored ciphertext is kept as
	// is when the password did not change.
	Save(ctx context.Context, entry models.Entry, secret string) (models.Entry, error)

	// GetAll returns every entry without its password, newest first.
	GetAll(ctx context.Context) ([]models.Entry, error)

	// DecryptPasswordField returns the plaintext password of an entry.
	// found is false when no entry has the id.
	DecryptPasswordField(ctx context.Context, id, secret string) (password string, found bool, err error)

	// Get returns one fully decrypted entry.
	Get(ctx context.Context, id, secret string) (entry models.Entry, found bool, err error)

	// Delete removes an entry; deleting a missing id is a no-op.
	Delete(ctx context.Context, id string) error

	// Search matches query, case-insensitively, against title, username,
	// website, notes, tags and non-secret custom field values.
	Search(ctx context.Context, query string) ([]models.Entry, error)

	ByCategory(ctx context.Context, categoryID string) ([]models.Entry, error)

	// UpdateLastUsed marks an entry as used now. A missing id is a no-op.
	UpdateLastUsed(ctx context.Context, id string) error

	// FrequentlyUsed returns at most limit entries that have been used,
	// most recently used first.
	FrequentlyUsed(ctx context.Context, limit int) ([]models.Entry, error)

	Favorites(ctx context.Context) ([]models.Entry, error)
}

// CategoryService manages the category collection. The default categories
// always exist and cannot be deleted.
type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (models.Category, bool, error)
	Create(ctx context.Context, category models.Category) (models.Category, error)
	Update(ctx context.Context, category models.Category) error
	// Delete moves the entries of the category to "uncategorized" and then
	// removes the category.
	Delete(ctx context.Context, id string) error
}

// SnapshotService exports and imports the whole vault as one JSON blob.
// Passwords stay encrypted in the blob.
type SnapshotService interface {
	Export(ctx context.Context) ([]byte, error)
	// Import validates blob and replaces every entry and category with
	// its contents.
	Import(ctx context.Context, blob []byte) error
}

// RecoveryEngine reconciles entries encrypted under keys derived from
// historical secret layouts.
type RecoveryEngine interface {
	// Recover finds, for every entry, a candidate secret that decrypts it.
	// Nothing is written.
	Recover(ctx context.Context, secret string) models.RecoveryResult

	// Migrate re-runs recovery and re-encrypts every recovered entry under
	// targetSecret. An entry that cannot be written is reported and skipped;
	// the remaining entries are still migrated.
	Migrate(ctx context.Context, secret, targetSecret string) models.MigrationResult
}
