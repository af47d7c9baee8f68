package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/TuPhung369/PasswordEpic/internal/crypto"
	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/internal/store"
	"github.com/TuPhung369/PasswordEpic/internal/validators"
	"github.com/TuPhung369/PasswordEpic/models"
)

// errUnchanged aborts a Modify callback without writing anything.
var errUnchanged = errors.New("collection unchanged")

type entryStore struct {
	entries     store.EntryRepository
	categories  store.CategoryRepository
	credentials store.CredentialRepository
	keys        crypto.KeyChainService
	validator   validators.Validator
	ids         IDGenerator

	now func() time.Time

	logger *logger.Logger
}

func NewEntryStore(storages *store.Storages, keys crypto.KeyChainService, validator validators.Validator, ids IDGenerator, log *logger.Logger) EntryStore {
	return &entryStore{
		entries:     storages.Entries,
		categories:  storages.Categories,
		credentials: storages.Credentials,
		keys:        keys,
		validator:   validator,
		ids:         ids,
		now:         time.Now,
		logger:      log,
	}
}

func (s *entryStore) Initialize(ctx context.Context, secret string) error {
	const op = "initialize entry store"

	material, err := s.credentials.LoadVerification(ctx)
	if err != nil {
		return fail(op, ErrStorage, err)
	}
	if !material.IsSet() {
		return fail(op, ErrConfiguration, nil)
	}
	got := s.keys.VerificationHash(secret, material.Salt)
	if subtle.ConstantTimeCompare([]byte(got), []byte(material.Hash)) != 1 {
		return fail(op, ErrInvalidCredential, nil)
	}

	err = s.categories.Modify(ctx, func(current []models.Category, exists bool) ([]models.Category, error) {
		if exists {
			return nil, errUnchanged
		}
		return models.DefaultCategories(), nil
	})
	if err != nil && !errors.Is(err, errUnchanged) && !errors.Is(err, store.ErrCorruptedData) {
		return fail(op, ErrStorage, err)
	}
	return nil
}

func (s *entryStore) Save(ctx context.Context, entry models.Entry, secret string) (models.Entry, error) {
	const op = "save entry"
	log := logger.FromContext(ctx)

	if secret == "" {
		return models.Entry{}, fail(op, ErrValidation, ErrEmptySecret)
	}
	if err := s.validator.Validate(ctx, entry); err != nil {
		return models.Entry{}, fail(op, ErrValidation, err)
	}

	if entry.ID == "" {
		entry.ID = s.ids.Generate()
	}
	if strings.TrimSpace(entry.CategoryID) == "" {
		entry.CategoryID = models.UncategorizedID
	}
	entry.Tags = dedupeTags(entry.Tags)

	var saved models.PersistedEntry
	err := s.entries.Modify(ctx, func(list []models.PersistedEntry) ([]models.PersistedEntry, error) {
		now := s.now()
		idx := slices.IndexFunc(list, func(p models.PersistedEntry) bool { return p.ID == entry.ID })

		var p models.PersistedEntry
		meta := entry
		meta.UpdatedAt = now
		preserve := false

		if idx >= 0 {
			p = list[idx]
			meta.CreatedAt = p.CreatedAt
			meta.AccessCount = p.AccessCount
			meta.PasswordChangeCount = p.PasswordChangeCount
			if meta.LastUsed == nil {
				meta.LastUsed = p.LastUsed
			}

			// the stored password is only known when secret opens it
			current, err := s.openEntry(p, secret)
			switch {
			case err != nil:
				log.Debug().Str("func", "*entryStore.Save").Str("id", p.ID).Msg("existing password not readable with this secret, re-encrypting")
			case subtle.ConstantTimeCompare([]byte(current), []byte(entry.Password)) == 1:
				preserve = true
			default:
				meta.PasswordChangeCount++
			}
		} else if meta.CreatedAt.IsZero() {
			meta.CreatedAt = now
		}

		p.ApplyMetadata(meta)
		p.StorageVersion = models.StorageVersion

		if !preserve {
			c, err := s.sealPassword(entry.Password, secret)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrEncryption, err)
			}
			p.SetCipher(c)
			p.DerivationVersion = models.DerivationCanonical
		}

		if idx >= 0 {
			list[idx] = p
		} else {
			list = append(list, p)
		}
		saved = p
		return list, nil
	})
	if err != nil {
		log.Err(err).Str("func", "*entryStore.Save").Str("id", entry.ID).Msg("error saving entry")
		if errors.Is(err, ErrEncryption) {
			return models.Entry{}, fail(op, ErrEncryption, err)
		}
		return models.Entry{}, fail(op, ErrStorage, err)
	}

	return saved.Decrypted(entry.Password), nil
}

func (s *entryStore) GetAll(ctx context.Context) ([]models.Entry, error) {
	list, err := s.load(ctx, "get all entries")
	if err != nil {
		return nil, err
	}
	return metadataSortedByUpdate(list, func(models.PersistedEntry) bool { return true }), nil
}

func (s *entryStore) DecryptPasswordField(ctx context.Context, id, secret string) (string, bool, error) {
	const op = "decrypt password"

	p, found, err := s.find(ctx, op, id)
	if err != nil || !found {
		return "", found, err
	}

	password, err := s.openEntry(p, secret)
	if err != nil {
		return "", true, fail(op, ErrDecryption, err)
	}
	return password, true, nil
}

func (s *entryStore) Get(ctx context.Context, id, secret string) (models.Entry, bool, error) {
	const op = "get entry"

	p, found, err := s.find(ctx, op, id)
	if err != nil || !found {
		return models.Entry{}, found, err
	}

	password, err := s.openEntry(p, secret)
	if err != nil {
		return models.Entry{}, true, fail(op, ErrDecryption, err)
	}
	return p.Decrypted(password), true, nil
}

func (s *entryStore) Delete(ctx context.Context, id string) error {
	err := s.entries.Modify(ctx, func(list []models.PersistedEntry) ([]models.PersistedEntry, error) {
		idx := slices.IndexFunc(list, func(p models.PersistedEntry) bool { return p.ID == id })
		if idx < 0 {
			return nil, errUnchanged
		}
		return slices.Delete(list, idx, idx+1), nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return fail("delete entry", ErrStorage, err)
	}
	return nil
}

func (s *entryStore) Search(ctx context.Context, query string) ([]models.Entry, error) {
	list, err := s.load(ctx, "search entries")
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	return metadataSortedByUpdate(list, func(p models.PersistedEntry) bool {
		return q == "" || matches(p, q)
	}), nil
}

func (s *entryStore) ByCategory(ctx context.Context, categoryID string) ([]models.Entry, error) {
	list, err := s.load(ctx, "list entries by category")
	if err != nil {
		return nil, err
	}
	return metadataSortedByUpdate(list, func(p models.PersistedEntry) bool {
		return entryCategory(p) == categoryID
	}), nil
}

func (s *entryStore) UpdateLastUsed(ctx context.Context, id string) error {
	err := s.entries.Modify(ctx, func(list []models.PersistedEntry) ([]models.PersistedEntry, error) {
		idx := slices.IndexFunc(list, func(p models.PersistedEntry) bool { return p.ID == id })
		if idx < 0 {
			return nil, errUnchanged
		}
		now := s.now()
		list[idx].LastUsed = &now
		list[idx].UpdatedAt = now
		list[idx].AccessCount++
		return list, nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return fail("update last used", ErrStorage, err)
	}
	return nil
}

func (s *entryStore) FrequentlyUsed(ctx context.Context, limit int) ([]models.Entry, error) {
	list, err := s.load(ctx, "list frequently used entries")
	if err != nil {
		return nil, err
	}

	used := make([]models.Entry, 0)
	for _, p := range list {
		if p.LastUsed != nil {
			used = append(used, p.Metadata())
		}
	}
	slices.SortStableFunc(used, func(a, b models.Entry) int {
		return b.LastUsed.Compare(*a.LastUsed)
	})

	if limit < 0 {
		limit = 0
	}
	if len(used) > limit {
		used = used[:limit]
	}
	return used, nil
}

func (s *entryStore) Favorites(ctx context.Context) ([]models.Entry, error) {
	list, err := s.load(ctx, "list favorites")
	if err != nil {
		return nil, err
	}
	return metadataSortedByUpdate(list, func(p models.PersistedEntry) bool { return p.Favorite }), nil
}

// load reads the collection for read paths: malformed stored data reads as
// an empty vault.
func (s *entryStore) load(ctx context.Context, op string) ([]models.PersistedEntry, error) {
	list, err := s.entries.LoadAll(ctx)
	if err != nil {
		if errors.Is(err, store.ErrCorruptedData) {
			logger.FromContext(ctx).Warn().Err(err).Str("op", op).Msg("stored entries are unreadable, treating as empty")
			return []models.PersistedEntry{}, nil
		}
		return nil, fail(op, ErrStorage, err)
	}
	return list, nil
}

func (s *entryStore) find(ctx context.Context, op, id string) (models.PersistedEntry, bool, error) {
	list, err := s.load(ctx, op)
	if err != nil {
		return models.PersistedEntry{}, false, err
	}
	idx := slices.IndexFunc(list, func(p models.PersistedEntry) bool { return p.ID == id })
	if idx < 0 {
		return models.PersistedEntry{}, false, nil
	}
	return list[idx], true, nil
}

// openEntry decrypts the password of p with the key derived from secret and
// the entry's own salt. An entry that never had a password opens to "".
func (s *entryStore) openEntry(p models.PersistedEntry, secret string) (string, error) {
	c := p.Cipher()
	if c.IsZero() {
		return "", nil
	}
	return s.keys.Open(c, s.keys.DeriveKey(secret, c.Salt))
}

func (s *entryStore) sealPassword(password, secret string) (models.PasswordCipher, error) {
	salt, err := s.keys.GenerateSalt()
	if err != nil {
		return models.PasswordCipher{}, err
	}
	c, err := s.keys.Seal(password, s.keys.DeriveKey(secret, salt))
	if err != nil {
		return models.PasswordCipher{}, err
	}
	c.Salt = salt
	return c, nil
}

func metadataSortedByUpdate(list []models.PersistedEntry, keep func(models.PersistedEntry) bool) []models.Entry {
	out := make([]models.Entry, 0, len(list))
	for _, p := range list {
		if keep(p) {
			out = append(out, p.Metadata())
		}
	}
	slices.SortStableFunc(out, func(a, b models.Entry) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out
}

func matches(p models.PersistedEntry, q string) bool {
	fields := []string{p.Title, p.Username, p.Website, p.Notes}
	fields = append(fields, p.Tags...)
	for _, cf := range p.CustomFields {
		if !cf.IsSecret() {
			fields = append(fields, cf.Value)
		}
	}

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func entryCategory(p models.PersistedEntry) string {
	if p.CategoryID == "" {
		return models.UncategorizedID
	}
	return p.CategoryID
}

// dedupeTags trims tags and drops repeats, keeping first-seen order.
func dedupeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
