package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/TuPhung369/PasswordEpic/internal/crypto"
	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/internal/store"
	"github.com/TuPhung369/PasswordEpic/internal/vault"
	"github.com/TuPhung369/PasswordEpic/models"
)

const (
	// ReverificationInterval is how long a verified secret stays trusted.
	ReverificationInterval = 7 * 24 * time.Hour

	// CapabilityCacheTTL is how long the vault capability check is reused.
	CapabilityCacheTTL = 30 * time.Minute

	// VaultCallTimeout bounds one credential vault read.
	VaultCallTimeout = 15 * time.Second

	// VaultCredentialName is the name the master secret is stored under.
	VaultCredentialName = "master_password"
)

type credentialVerifier struct {
	credentials store.CredentialRepository
	vault       vault.CredentialVault
	keys        crypto.KeyChainService

	now          func() time.Time
	vaultTimeout time.Duration

	mu            sync.Mutex
	supported     bool
	supportedAt   time.Time
	supportCached bool

	logger *logger.Logger
}

func NewCredentialVerifier(credentials store.CredentialRepository, v vault.CredentialVault, keys crypto.KeyChainService, log *logger.Logger) CredentialVerifier {
	return &credentialVerifier{
		credentials:  credentials,
		vault:        v,
		keys:         keys,
		now:          time.Now,
		vaultTimeout: VaultCallTimeout,
		logger:       log,
	}
}

func (s *credentialVerifier) StoreMasterSecret(ctx context.Context, secret string, enableVaultUnlock bool) error {
	const op = "store master secret"
	log := logger.FromContext(ctx)

	if secret == "" {
		return fail(op, ErrValidation, ErrEmptySecret)
	}

	salt, err := s.keys.GenerateSalt()
	if err != nil {
		log.Err(err).Str("func", "*credentialVerifier.StoreMasterSecret").Msg("error generating salt")
		return fail(op, ErrConfiguration, err)
	}

	now := s.now()
	material := models.VerificationMaterial{
		Hash:           s.keys.VerificationHash(secret, salt),
		Salt:           salt,
		LastVerifiedAt: &now,
	}
	if err = s.credentials.SaveVerification(ctx, material); err != nil {
		log.Err(err).Str("func", "*credentialVerifier.StoreMasterSecret").Msg("error saving verification material")
		return fail(op, ErrStorage, err)
	}

	if !enableVaultUnlock {
		return nil
	}

	if err = s.withVaultTimeout(ctx, func(ctx context.Context) error {
		return s.vault.Set(ctx, VaultCredentialName, secret)
	}); err != nil {
		log.Err(err).Str("func", "*credentialVerifier.StoreMasterSecret").Msg("error storing secret in credential vault")
		return fail(op, vaultErrorKind(err), err)
	}
	if err = s.credentials.SetVaultUnlockEnabled(ctx, true); err != nil {
		return fail(op, ErrStorage, err)
	}

	log.Info().Msg("vault unlock enabled")
	return nil
}

func (s *credentialVerifier) VerifySecret(ctx context.Context, secret string) error {
	const op = "verify secret"

	material, err := s.credentials.LoadVerification(ctx)
	if err != nil {
		return fail(op, ErrStorage, err)
	}
	if !material.IsSet() {
		return fail(op, ErrConfiguration, nil)
	}

	got := s.keys.VerificationHash(secret, material.Salt)
	if subtle.ConstantTimeCompare([]byte(got), []byte(material.Hash)) != 1 {
		logger.FromContext(ctx).Debug().Msg("master secret verification failed")
		return fail(op, ErrInvalidCredential, nil)
	}

	if err = s.credentials.SetLastVerified(ctx, s.now()); err != nil {
		return fail(op, ErrStorage, err)
	}
	return nil
}

func (s *credentialVerifier) IsReverificationRequired(ctx context.Context) (bool, error) {
	material, err := s.credentials.LoadVerification(ctx)
	if err != nil {
		return true, fail("check reverification", ErrStorage, err)
	}
	if material.LastVerifiedAt == nil {
		return true, nil
	}
	return s.now().Sub(*material.LastVerifiedAt) >= ReverificationInterval, nil
}

func (s *credentialVerifier) UnlockViaVault(ctx context.Context) models.UnlockResult {
	const op = "unlock via vault"
	log := logger.FromContext(ctx)

	enabled, err := s.credentials.VaultUnlockEnabled(ctx)
	if err != nil {
		return models.UnlockResult{Status: models.UnlockUnknownFailure, Err: fail(op, ErrStorage, err)}
	}
	if !enabled {
		return models.UnlockResult{Status: models.UnlockNotEnabled}
	}

	supported, err := s.isSupported(ctx)
	if err != nil {
		log.Err(err).Str("func", "*credentialVerifier.UnlockViaVault").Msg("capability check failed")
		return unlockFailure(op, err)
	}
	if !supported {
		return models.UnlockResult{Status: models.UnlockNotSupported, Err: fail(op, ErrVaultUnavailable, nil)}
	}

	var secret string
	err = s.withVaultTimeout(ctx, func(ctx context.Context) error {
		var err error
		secret, err = s.vault.Get(ctx, VaultCredentialName)
		return err
	})
	if err != nil {
		log.Debug().Err(err).Str("func", "*credentialVerifier.UnlockViaVault").Msg("vault unlock did not succeed")
		return unlockFailure(op, err)
	}
	if secret == "" {
		return models.UnlockResult{Status: models.UnlockNoStoredCredential, Err: fail(op, ErrConfiguration, vault.ErrNoCredential)}
	}

	return models.UnlockResult{Status: models.UnlockSuccess, Secret: secret}
}

func (s *credentialVerifier) DisableVaultUnlock(ctx context.Context) error {
	const op = "disable vault unlock"

	if err := s.vault.Reset(ctx); err != nil && !errors.Is(err, vault.ErrUnavailable) {
		return fail(op, vaultErrorKind(err), err)
	}
	if err := s.credentials.SetVaultUnlockEnabled(ctx, false); err != nil {
		return fail(op, ErrStorage, err)
	}
	return nil
}

func (s *credentialVerifier) IsVaultUnlockEnabled(ctx context.Context) (bool, error) {
	enabled, err := s.credentials.VaultUnlockEnabled(ctx)
	if err != nil {
		return false, fail("read vault unlock flag", ErrStorage, err)
	}
	return enabled, nil
}

// isSupported returns the cached capability flag, asking the vault when
// the cache is empty or older than CapabilityCacheTTL. Failed checks are
// not cached.
func (s *credentialVerifier) isSupported(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.supportCached && s.now().Sub(s.supportedAt) < CapabilityCacheTTL {
		supported := s.supported
		s.mu.Unlock()
		return supported, nil
	}
	s.mu.Unlock()

	var supported bool
	err := s.withVaultTimeout(ctx, func(ctx context.Context) error {
		var err error
		supported, err = s.vault.IsSupported(ctx)
		return err
	})
	if errors.Is(err, vault.ErrUnavailable) {
		supported, err = false, nil
	}
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	s.supported = supported
	s.supportedAt = s.now()
	s.supportCached = true
	s.mu.Unlock()

	return supported, nil
}

// withVaultTimeout runs call on its own goroutine and gives up after the
// vault timeout even when the platform call ignores ctx.
func (s *credentialVerifier) withVaultTimeout(ctx context.Context, call func(ctx context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, s.vaultTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- call(callCtx)
	}()

	select {
	case err := <-done:
		return err
	case <-callCtx.Done():
		return callCtx.Err()
	}
}

func unlockFailure(op string, err error) models.UnlockResult {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.UnlockResult{Status: models.UnlockTimeout, Err: fail(op, ErrTimeout, err)}
	case errors.Is(err, vault.ErrUserCancelled), errors.Is(err, context.Canceled):
		return models.UnlockResult{Status: models.UnlockUserCancelled, Err: fail(op, ErrVaultUnavailable, err)}
	case errors.Is(err, vault.ErrNoCredential):
		return models.UnlockResult{Status: models.UnlockNoStoredCredential, Err: fail(op, ErrConfiguration, err)}
	case errors.Is(err, vault.ErrUnavailable):
		return models.UnlockResult{Status: models.UnlockNotSupported, Err: fail(op, ErrVaultUnavailable, err)}
	default:
		return models.UnlockResult{Status: models.UnlockUnknownFailure, Err: fail(op, ErrVaultUnavailable, err)}
	}
}

func vaultErrorKind(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return ErrVaultUnavailable
}
