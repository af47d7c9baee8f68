package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/TuPhung369/PasswordEpic/internal/crypto"
	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/internal/mock"
	"github.com/TuPhung369/PasswordEpic/internal/store"
	"github.com/TuPhung369/PasswordEpic/models"
)

// driftMaterial is the key material of an installation whose entries were
// written with the combined dynamic+static secret layout.
var driftMaterial = models.KeyMaterial{
	LoginTimestamp: "1700000000",
	SessionSalt:    "sess",
	FixedSalt:      "fixed",
	UserUUID:       "u1",
}

const driftSecret = testSecret + "::1700000000::sess::fixed::u1"

// legacyEntry encrypts password the way versions before the derivation stamp
// did: under an arbitrary secret and without derivationVersion.
func legacyEntry(t *testing.T, keys crypto.KeyChainService, id, secret, password string) models.PersistedEntry {
	t.Helper()

	salt, err := keys.GenerateSalt()
	require.NoError(t, err)
	c, err := keys.Seal(password, keys.DeriveKey(secret, salt))
	require.NoError(t, err)
	c.Salt = salt

	p := models.PersistedEntry{
		ID:             id,
		Title:          "title " + id,
		CategoryID:     models.UncategorizedID,
		StorageVersion: models.StorageVersion,
	}
	p.SetCipher(c)
	return p
}

func newTestRecovery(t *testing.T, parallelism int) (*recoveryEngine, *entryStore, *store.Storages, crypto.KeyChainService) {
	t.Helper()

	entries, storages, keys := newTestEntryStore(t, newTestClock())
	engine := NewRecoveryEngine(storages, entries, keys, parallelism, logger.Nop()).(*recoveryEngine)
	return engine, entries, storages, keys
}

func seedDrift(t *testing.T, storages *store.Storages, keys crypto.KeyChainService, ids ...string) {
	t.Helper()
	ctx := testContext(t)

	require.NoError(t, storages.KeyMaterial.Save(ctx, driftMaterial))

	list := make([]models.PersistedEntry, 0, len(ids))
	for _, id := range ids {
		list = append(list, legacyEntry(t, keys, id, driftSecret, "pw-"+id))
	}
	require.NoError(t, storages.Entries.ReplaceAll(ctx, list))
}

func assertResultBalanced(t *testing.T, res models.RecoveryResult) {
	t.Helper()
	assert.Equal(t, res.TotalEntries, res.RecoveredEntries+len(res.FailedEntries))
}

// ─────────────────────────────────────────────
// Recover
// ─────────────────────────────────────────────

func TestRecover_EmptyVault(t *testing.T) {
	engine, _, _, _ := newTestRecovery(t, 2)

	res := engine.Recover(testContext(t), testSecret)
	assert.True(t, res.Success)
	assert.Zero(t, res.TotalEntries)
	assert.Empty(t, res.FailedEntries)
	assert.NoError(t, res.Err)
}

func TestRecover_DriftedEntries(t *testing.T) {
	ctx := testContext(t)
	engine, entries, storages, keys := newTestRecovery(t, 2)
	seedDrift(t, storages, keys, "e1", "e2", "e3")

	_, _, err := entries.DecryptPasswordField(ctx, "e1", testSecret)
	require.ErrorIs(t, err, ErrDecryption, "the raw secret alone must not open drifted entries")

	res := engine.Recover(ctx, testSecret)
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.TotalEntries)
	assert.Equal(t, 3, res.RecoveredEntries)
	assert.Empty(t, res.FailedEntries)
	assertResultBalanced(t, res)
}

func TestRecover_ActiveMaterialLostDynamicComponent(t *testing.T) {
	ctx := testContext(t)
	engine, entries, storages, keys := newTestRecovery(t, 2)
	seedDrift(t, storages, keys, "e1", "e2", "e3")

	// the session now only knows the static group; writing it back leaves
	// the stored dynamic values alone
	active := models.KeyMaterial{FixedSalt: driftMaterial.FixedSalt, UserUUID: driftMaterial.UserUUID}
	require.NoError(t, storages.KeyMaterial.Save(ctx, active))
	activeSecret := testSecret + "::fixed::u1"

	stored, err := storages.KeyMaterial.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, driftMaterial.LoginTimestamp, stored.LoginTimestamp)
	require.Equal(t, driftMaterial.SessionSalt, stored.SessionSalt)

	for _, id := range []string{"e1", "e2", "e3"} {
		_, _, err = entries.DecryptPasswordField(ctx, id, activeSecret)
		require.ErrorIs(t, err, ErrDecryption, id)
	}

	res := engine.Recover(ctx, testSecret)
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.TotalEntries)
	assert.Equal(t, 3, res.RecoveredEntries)
	assert.Empty(t, res.FailedEntries)
	assertResultBalanced(t, res)

	migration := engine.Migrate(ctx, testSecret, "newSecret")
	require.NoError(t, migration.Err)
	assert.True(t, migration.Success)
	assert.Equal(t, 3, migration.MigratedCount)
	assert.Empty(t, migration.FailedEntries)

	for _, id := range []string{"e1", "e2", "e3"} {
		password, found, err := entries.DecryptPasswordField(ctx, id, "newSecret")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "pw-"+id, password)

		for _, old := range []string{testSecret, activeSecret, driftSecret} {
			_, _, err = entries.DecryptPasswordField(ctx, id, old)
			assert.ErrorIs(t, err, ErrDecryption, id)
		}
	}
}

func TestRecover_ReportsUnrecoverableEntries(t *testing.T) {
	ctx := testContext(t)
	engine, _, storages, keys := newTestRecovery(t, 3)

	require.NoError(t, storages.KeyMaterial.Save(ctx, driftMaterial))
	require.NoError(t, storages.Entries.ReplaceAll(ctx, []models.PersistedEntry{
		legacyEntry(t, keys, "e1", driftSecret, "a"),
		legacyEntry(t, keys, "lost", "someone else", "b"),
		legacyEntry(t, keys, "e3", testSecret+"::fixed::u1", "c"),
		{ID: "empty", Title: "no password", StorageVersion: models.StorageVersion},
	}))

	res := engine.Recover(ctx, testSecret)
	assert.True(t, res.Success)
	assert.Equal(t, 4, res.TotalEntries)
	assert.Equal(t, 3, res.RecoveredEntries)
	assert.Equal(t, []string{"lost"}, res.FailedEntries)
	assertResultBalanced(t, res)
}

func TestRecover_UsesAlternateSalts(t *testing.T) {
	ctx := testContext(t)
	engine, _, storages, keys := newTestRecovery(t, 1)

	require.NoError(t, storages.KeyMaterial.Save(ctx, models.KeyMaterial{
		AlternateSalts: []models.AlternateSalt{{Key: store.AlternateSaltPrefix + "old", Value: "pepper"}},
	}))
	require.NoError(t, storages.Entries.ReplaceAll(ctx, []models.PersistedEntry{
		legacyEntry(t, keys, "e1", testSecret+"::pepper", "a"),
	}))

	res := engine.Recover(ctx, testSecret)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.RecoveredEntries)
}

func TestRecover_DoesNotWrite(t *testing.T) {
	ctx := testContext(t)
	engine, _, storages, keys := newTestRecovery(t, 2)
	seedDrift(t, storages, keys, "e1", "e2")

	before, err := storages.KV.Get(ctx, store.KeyEntries)
	require.NoError(t, err)

	engine.Recover(ctx, testSecret)

	after, err := storages.KV.Get(ctx, store.KeyEntries)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRecover_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKeyValueStore(ctrl)
	storages := store.NewStoragesFromKV(kv, logger.Nop())

	kv.EXPECT().Get(gomock.Any(), store.KeyEntries).Return(nil, errors.New("disk is gone")).Times(2)

	engine := NewRecoveryEngine(storages, nil, fastKeys(), 2, logger.Nop())

	res := engine.Recover(testContext(t), testSecret)
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, ErrStorage)
	assertResultBalanced(t, res)

	mig := engine.Migrate(testContext(t), testSecret, "newSecret")
	assert.False(t, mig.Success)
	assert.Zero(t, mig.MigratedCount)
	assert.ErrorIs(t, mig.Err, ErrStorage)
}

// cancellingKeys cancels the run on the first decryption attempt.
type cancellingKeys struct {
	crypto.KeyChainService
	cancel context.CancelFunc
}

func (k cancellingKeys) Open(c models.PasswordCipher, key []byte) (string, error) {
	k.cancel()
	return k.KeyChainService.Open(c, key)
}

func TestRecover_CancelledRunCountsUnattemptedAsFailed(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	defer cancel()

	_, _, storages, keys := newTestRecovery(t, 1)
	require.NoError(t, storages.Entries.ReplaceAll(ctx, []models.PersistedEntry{
		legacyEntry(t, keys, "e1", testSecret, "a"),
		legacyEntry(t, keys, "e2", testSecret, "b"),
		legacyEntry(t, keys, "e3", testSecret, "c"),
		legacyEntry(t, keys, "e4", testSecret, "d"),
	}))

	engine := NewRecoveryEngine(storages, nil, cancellingKeys{KeyChainService: keys, cancel: cancel}, 1, logger.Nop())

	res := engine.Recover(ctx, testSecret)
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, 4, res.TotalEntries)
	assert.Equal(t, 1, res.RecoveredEntries)
	assert.Equal(t, []string{"e2", "e3", "e4"}, res.FailedEntries)
	assertResultBalanced(t, res)
}

func TestRecover_DerivesEachKeyOncePerRunAndWipesIt(t *testing.T) {
	ctx := testContext(t)
	ctrl := gomock.NewController(t)
	keys := mock.NewMockKeyChainService(ctrl)
	storages := newMemoryStorages(t)

	shared := models.PasswordCipher{Ciphertext: "Y3Q=", Salt: "s", IV: "aXY=", AuthTag: "dGFn"}
	list := make([]models.PersistedEntry, 0, 2)
	for _, id := range []string{"e1", "e2"} {
		p := models.PersistedEntry{ID: id, StorageVersion: models.StorageVersion}
		p.SetCipher(shared)
		list = append(list, p)
	}
	require.NoError(t, storages.Entries.ReplaceAll(ctx, list))

	keyA := bytes.Repeat([]byte{0xA}, 32)
	keyB := bytes.Repeat([]byte{0xB}, 32)

	keys.EXPECT().CandidatesFor(models.DerivationLegacy, gomock.Any(), "pw").Return([]string{"a", "b"}).Times(2)
	keys.EXPECT().DeriveKey("a", "s").Return(keyA).Times(1)
	keys.EXPECT().DeriveKey("b", "s").Return(keyB).Times(1)
	keys.EXPECT().Open(shared, bytes.Repeat([]byte{0xA}, 32)).Return("", crypto.ErrAuthenticationFailed).Times(2)
	keys.EXPECT().Open(shared, bytes.Repeat([]byte{0xB}, 32)).Return("secret", nil).Times(2)

	engine := NewRecoveryEngine(storages, nil, keys, 2, logger.Nop())

	res := engine.Recover(ctx, "pw")
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.RecoveredEntries)

	assert.Equal(t, make([]byte, 32), keyA)
	assert.Equal(t, make([]byte, 32), keyB)
}

// ─────────────────────────────────────────────
// Migrate
// ─────────────────────────────────────────────

func TestMigrate_ReencryptsUnderTargetSecret(t *testing.T) {
	ctx := testContext(t)
	engine, entries, storages, keys := newTestRecovery(t, 2)
	seedDrift(t, storages, keys, "e1", "e2", "e3")

	res := engine.Migrate(ctx, testSecret, "newSecret")
	require.NoError(t, res.Err)
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.MigratedCount)

	for _, id := range []string{"e1", "e2", "e3"} {
		password, found, err := entries.DecryptPasswordField(ctx, id, "newSecret")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "pw-"+id, password)

		_, _, err = entries.DecryptPasswordField(ctx, id, testSecret)
		assert.ErrorIs(t, err, ErrDecryption)

		p := persisted(t, storages, id)
		assert.Equal(t, models.DerivationCanonical, p.DerivationVersion)
		assert.Equal(t, "title "+id, p.Title)
	}
}

func TestMigrate_ResumeIsIdempotent(t *testing.T) {
	ctx := testContext(t)
	engine, entries, storages, keys := newTestRecovery(t, 2)
	seedDrift(t, storages, keys, "e1", "e2", "e3")

	require.True(t, engine.Migrate(ctx, testSecret, "newSecret").Success)
	before := map[string]models.PasswordCipher{}
	for _, id := range []string{"e1", "e2", "e3"} {
		before[id] = persisted(t, storages, id).Cipher()
	}

	res := engine.Migrate(ctx, testSecret, "newSecret")
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.MigratedCount)

	for _, id := range []string{"e1", "e2", "e3"} {
		assert.Equal(t, before[id], persisted(t, storages, id).Cipher(), id)

		password, _, err := entries.DecryptPasswordField(ctx, id, "newSecret")
		require.NoError(t, err)
		assert.Equal(t, "pw-"+id, password)
	}
}

func TestMigrate_ResumesPartiallyMigratedVault(t *testing.T) {
	ctx := testContext(t)
	engine, entries, storages, keys := newTestRecovery(t, 2)
	seedDrift(t, storages, keys, "e1", "e2")

	_, err := entries.Save(ctx, models.Entry{ID: "e1", Title: "title e1", Password: "pw-e1"}, "newSecret")
	require.NoError(t, err)

	res := engine.Migrate(ctx, testSecret, "newSecret")
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.MigratedCount)

	for _, id := range []string{"e1", "e2"} {
		password, _, err := entries.DecryptPasswordField(ctx, id, "newSecret")
		require.NoError(t, err)
		assert.Equal(t, "pw-"+id, password)
	}
}

func TestMigrate_LeavesUnrecoveredEntriesUntouched(t *testing.T) {
	ctx := testContext(t)
	engine, _, storages, keys := newTestRecovery(t, 2)

	lost := legacyEntry(t, keys, "lost", "someone else", "x")
	require.NoError(t, storages.Entries.ReplaceAll(ctx, []models.PersistedEntry{
		legacyEntry(t, keys, "e1", testSecret, "a"),
		lost,
	}))

	res := engine.Migrate(ctx, testSecret, "newSecret")
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.MigratedCount)
	assert.Equal(t, lost.Cipher(), persisted(t, storages, "lost").Cipher())
}

func TestMigrate_CleansUpLegacyMetadata(t *testing.T) {
	ctx := testContext(t)
	engine, entries, storages, keys := newTestRecovery(t, 2)
	require.NoError(t, storages.KeyMaterial.Save(ctx, driftMaterial))

	e2 := legacyEntry(t, keys, "e2", driftSecret, "pw-e2")
	e2.Tags = []string{"work", " "}
	e2.CustomFields = []models.CustomField{
		{Name: "", Value: "1234", Kind: models.FieldText},
		{Name: "pin", Value: "0000", Kind: "pin"},
	}
	require.NoError(t, storages.Entries.ReplaceAll(ctx, []models.PersistedEntry{
		legacyEntry(t, keys, "e1", driftSecret, "pw-e1"),
		e2,
		legacyEntry(t, keys, "e3", driftSecret, "pw-e3"),
	}))

	res := engine.Migrate(ctx, testSecret, "newSecret")
	require.NoError(t, res.Err)
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.MigratedCount)
	assert.Empty(t, res.FailedEntries)

	for _, id := range []string{"e1", "e2", "e3"} {
		password, _, err := entries.DecryptPasswordField(ctx, id, "newSecret")
		require.NoError(t, err, id)
		assert.Equal(t, "pw-"+id, password)
	}

	p := persisted(t, storages, "e2")
	assert.Equal(t, []string{"work"}, p.Tags)
	assert.Equal(t, []models.CustomField{
		{Name: "field 1", Value: "1234", Kind: models.FieldText},
		{Name: "pin", Value: "0000", Kind: models.FieldPassword},
	}, p.CustomFields)
}

// failingSaves rejects every save of one entry.
type failingSaves struct {
	EntryStore
	id string
}

func (f failingSaves) Save(ctx context.Context, entry models.Entry, secret string) (models.Entry, error) {
	if entry.ID == f.id {
		return models.Entry{}, fail("save entry", ErrStorage, errors.New("disk full"))
	}
	return f.EntryStore.Save(ctx, entry, secret)
}

func TestMigrate_EntryFailureDoesNotBlockOthers(t *testing.T) {
	ctx := testContext(t)
	engine, entries, storages, keys := newTestRecovery(t, 2)
	seedDrift(t, storages, keys, "e1", "e2", "e3")
	engine.store = failingSaves{EntryStore: entries, id: "e2"}
	before := persisted(t, storages, "e2").Cipher()

	res := engine.Migrate(ctx, testSecret, "newSecret")
	assert.False(t, res.Success)
	assert.Equal(t, 2, res.MigratedCount)
	assert.Equal(t, []string{"e2"}, res.FailedEntries)
	assert.ErrorIs(t, res.Err, ErrStorage)
	assert.ErrorContains(t, res.Err, `entry "e2"`)

	for _, id := range []string{"e1", "e3"} {
		password, _, err := entries.DecryptPasswordField(ctx, id, "newSecret")
		require.NoError(t, err, id)
		assert.Equal(t, "pw-"+id, password)
	}
	assert.Equal(t, before, persisted(t, storages, "e2").Cipher())

	// once the entry can be written again a rerun finishes the job
	engine.store = entries
	res = engine.Migrate(ctx, testSecret, "newSecret")
	require.NoError(t, res.Err)
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.MigratedCount)

	password, _, err := entries.DecryptPasswordField(ctx, "e2", "newSecret")
	require.NoError(t, err)
	assert.Equal(t, "pw-e2", password)
}

func TestMigrate_EmptyTarget(t *testing.T) {
	engine, _, _, _ := newTestRecovery(t, 2)

	res := engine.Migrate(testContext(t), testSecret, "")
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, ErrValidation)
}
