package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/TuPhung369/PasswordEpic/internal/crypto"
	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/internal/store"
	"github.com/TuPhung369/PasswordEpic/internal/workers"
	"github.com/TuPhung369/PasswordEpic/models"
)

// DefaultRecoveryParallelism is used when no parallelism is configured.
const DefaultRecoveryParallelism = 2

type recoveryEngine struct {
	entries     store.EntryRepository
	keyMaterial store.KeyMaterialRepository
	keys        crypto.KeyChainService
	store       EntryStore

	parallelism int

	logger *logger.Logger
}

func NewRecoveryEngine(storages *store.Storages, entryStore EntryStore, keys crypto.KeyChainService, parallelism int, log *logger.Logger) RecoveryEngine {
	if parallelism < 1 {
		parallelism = DefaultRecoveryParallelism
	}
	return &recoveryEngine{
		entries:     storages.Entries,
		keyMaterial: storages.KeyMaterial,
		keys:        keys,
		store:       entryStore,
		parallelism: parallelism,
		logger:      log,
	}
}

// attempt is the per-entry outcome of one run.
type attempt struct {
	entry     models.PersistedEntry
	password  string
	recovered bool
}

func (r *recoveryEngine) Recover(ctx context.Context, secret string) models.RecoveryResult {
	result, _ := r.run(ctx, "recover", secret)
	return result
}

func (r *recoveryEngine) Migrate(ctx context.Context, secret, targetSecret string) models.MigrationResult {
	const op = "migrate"
	log := logger.FromContext(ctx)

	if targetSecret == "" {
		return models.MigrationResult{Err: fail(op, ErrValidation, ErrEmptySecret)}
	}

	// the target is tried last so a resumed migration still finds the
	// entries it already re-encrypted
	result, attempts := r.run(ctx, op, secret, targetSecret)
	if !result.Success {
		return models.MigrationResult{Err: result.Err}
	}

	var (
		migrated int
		failed   = []string{}
		errs     []error
	)
	for _, a := range attempts {
		if !a.recovered {
			continue
		}
		if _, err := r.store.Save(ctx, migratable(a.entry.Decrypted(a.password)), targetSecret); err != nil {
			log.Err(err).Str("func", "*recoveryEngine.Migrate").Str("id", a.entry.ID).Msg("error re-encrypting entry")
			failed = append(failed, a.entry.ID)
			errs = append(errs, fmt.Errorf("entry %q: %w", a.entry.ID, err))
			continue
		}
		migrated++
	}

	log.Info().
		Int("migrated", migrated).
		Int("not_recovered", len(result.FailedEntries)).
		Int("not_written", len(failed)).
		Msg("migration finished")

	if len(failed) > 0 {
		return models.MigrationResult{MigratedCount: migrated, FailedEntries: failed, Err: fmt.Errorf("failed to %s: %w", op, errors.Join(errs...))}
	}
	return models.MigrationResult{Success: true, MigratedCount: migrated, FailedEntries: failed}
}

// migratable cleans up metadata that older versions accepted but the entry
// validator rejects, so a recovered entry is never stuck on its old key for
// a blank tag or an unnamed field.
func migratable(e models.Entry) models.Entry {
	if e.Tags != nil {
		e.Tags = slices.DeleteFunc(slices.Clone(e.Tags), func(t string) bool { return strings.TrimSpace(t) == "" })
	}
	if e.CustomFields == nil {
		return e
	}

	fields := make([]models.CustomField, len(e.CustomFields))
	for i, cf := range e.CustomFields {
		if strings.TrimSpace(cf.Name) == "" {
			cf.Name = fmt.Sprintf("field %d", i+1)
		}
		// unknown kinds stay hidden
		if cf.Kind != "" && !cf.Kind.IsKnown() {
			cf.Kind = models.FieldPassword
		}
		fields[i] = cf
	}
	e.CustomFields = fields
	return e
}

// run loads everything, tries every entry against its ordered candidates and
// aggregates the outcomes in stored order. Nothing is written.
func (r *recoveryEngine) run(ctx context.Context, op, secret string, extra ...string) (models.RecoveryResult, []attempt) {
	log := logger.FromContext(ctx)

	list, err := r.entries.LoadAll(ctx)
	if err != nil {
		log.Err(err).Str("func", "*recoveryEngine.run").Msg("error loading entries")
		return models.RecoveryResult{FailedEntries: []string{}, Err: fail(op, ErrStorage, err)}, nil
	}
	if len(list) == 0 {
		return models.RecoveryResult{Success: true, FailedEntries: []string{}}, nil
	}

	km, err := r.keyMaterial.Load(ctx)
	if err != nil {
		log.Err(err).Str("func", "*recoveryEngine.run").Msg("error loading key material")
		return models.RecoveryResult{TotalEntries: len(list), FailedEntries: []string{}, Err: fail(op, ErrStorage, err)}, nil
	}

	cache := newKeyCache(r.keys)
	defer cache.wipe()

	attempts := make([]attempt, len(list))
	jobs := workers.New(r.parallelism)
	for i, p := range list {
		i, p := i, p
		attempts[i].entry = p
		jobs.Add(workers.WorkerFunc(func(ctx context.Context) error {
			password, ok, err := r.tryEntry(ctx, cache, p, r.candidates(p, km, secret, extra))
			if err != nil {
				return err
			}
			attempts[i].password, attempts[i].recovered = password, ok
			return nil
		}))
	}
	runErr := jobs.Run(ctx)

	result := models.RecoveryResult{
		Success:       runErr == nil,
		TotalEntries:  len(list),
		FailedEntries: []string{},
	}
	for _, a := range attempts {
		if a.recovered {
			result.RecoveredEntries++
		} else {
			result.FailedEntries = append(result.FailedEntries, a.entry.ID)
		}
	}
	switch {
	case errors.Is(runErr, context.DeadlineExceeded):
		result.Err = fail(op, ErrTimeout, runErr)
	case runErr != nil:
		result.Err = fmt.Errorf("failed to %s: %w", op, runErr)
	}

	log.Info().
		Int("total", result.TotalEntries).
		Int("recovered", result.RecoveredEntries).
		Int("failed", len(result.FailedEntries)).
		Msg("recovery run finished")
	return result, attempts
}

func (r *recoveryEngine) candidates(p models.PersistedEntry, km models.KeyMaterial, secret string, extra []string) []string {
	version := p.DerivationVersion
	if version == 0 {
		version = models.DerivationLegacy
	}
	out := r.keys.CandidatesFor(version, km, secret)
	for _, e := range extra {
		if e != "" && !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	return out
}

// tryEntry returns the plaintext of the first candidate that authenticates.
// Failed candidates are expected and only logged at debug level.
func (r *recoveryEngine) tryEntry(ctx context.Context, cache *keyCache, p models.PersistedEntry, candidates []string) (string, bool, error) {
	log := logger.FromContext(ctx)

	c := p.Cipher()
	if c.IsZero() {
		return "", true, nil
	}

	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		password, err := r.keys.Open(c, cache.key(candidate, c.Salt))
		if err == nil {
			log.Debug().Str("id", p.ID).Int("candidate", i).Msg("entry recovered")
			return password, true, nil
		}
		log.Debug().Str("id", p.ID).Int("candidate", i).Msg("candidate did not authenticate")
	}

	log.Warn().Str("id", p.ID).Err(ErrRecoveryExhausted).Msg("entry not recovered")
	return "", false, nil
}

// keyCache memoizes derived keys per (candidate, salt) for one run.
// Concurrent misses on the same pair share one derivation.
type keyCache struct {
	keys  crypto.KeyChainService
	group singleflight.Group

	mu   sync.Mutex
	data map[string][]byte
}

func newKeyCache(keys crypto.KeyChainService) *keyCache {
	return &keyCache{keys: keys, data: make(map[string][]byte)}
}

func (c *keyCache) key(secret, salt string) []byte {
	id := secret + "\x00" + salt

	c.mu.Lock()
	k, ok := c.data[id]
	c.mu.Unlock()
	if ok {
		return k
	}

	v, _, _ := c.group.Do(id, func() (any, error) {
		c.mu.Lock()
		if k, ok := c.data[id]; ok {
			c.mu.Unlock()
			return k, nil
		}
		c.mu.Unlock()

		k := c.keys.DeriveKey(secret, salt)
		c.mu.Lock()
		c.data[id] = k
		c.mu.Unlock()
		return k, nil
	})
	return v.([]byte)
}

// wipe zeroes every cached key.
func (c *keyCache) wipe() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, k := range c.data {
		clear(k)
		delete(c.data, id)
	}
}
