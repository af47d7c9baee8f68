package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TuPhung369/PasswordEpic/internal/crypto"
	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/internal/store"
	"github.com/TuPhung369/PasswordEpic/internal/utils"
	"github.com/TuPhung369/PasswordEpic/internal/validators"
)

const testSecret = "correct horse battery staple"

// fastKeys keeps Argon2id and PBKDF2 cheap enough for unit tests.
func fastKeys() crypto.KeyChainService {
	return crypto.NewKeyChainServiceWithParams(crypto.Params{
		ArgonTime:          1,
		ArgonMemory:        1024,
		ArgonThreads:       1,
		VerifierIterations: 1000,
	})
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newMemoryStorages(t *testing.T) *store.Storages {
	t.Helper()

	kv, err := store.NewFileKeyValueStore(store.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	return store.NewStoragesFromKV(kv, logger.Nop())
}

// newTestEntryStore returns an entry store over memory storages with a
// master secret already stored.
func newTestEntryStore(t *testing.T, clock *testClock) (*entryStore, *store.Storages, crypto.KeyChainService) {
	t.Helper()

	storages := newMemoryStorages(t)
	keys := fastKeys()

	verifier := NewCredentialVerifier(storages.Credentials, nil, keys, logger.Nop())
	require.NoError(t, verifier.StoreMasterSecret(testContext(t), testSecret, false))

	s := NewEntryStore(storages, keys, validators.NewVaultValidator(), utils.NewUUIDGenerator(), logger.Nop()).(*entryStore)
	s.now = clock.Now
	return s, storages, keys
}

// testContext returns a context canceled when the test finishes, like
// testing.T.Context on newer Go releases.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
