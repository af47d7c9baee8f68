package service

import (
	"github.com/TuPhung369/PasswordEpic/internal/config"
	"github.com/TuPhung369/PasswordEpic/internal/crypto"
	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/internal/store"
	"github.com/TuPhung369/PasswordEpic/internal/utils"
	"github.com/TuPhung369/PasswordEpic/internal/validators"
	"github.com/TuPhung369/PasswordEpic/internal/vault"
)

type Services struct {
	Verifier   CredentialVerifier
	Entries    EntryStore
	Categories CategoryService
	Snapshots  SnapshotService
	Recovery   RecoveryEngine
}

// NewServices wires every vault service over one set of storages.
func NewServices(storages *store.Storages, v vault.CredentialVault, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	keys := crypto.NewKeyChainServiceWithParams(crypto.Params{
		ArgonTime:          cfg.Crypto.ArgonTime,
		ArgonMemory:        cfg.Crypto.ArgonMemoryKiB,
		ArgonThreads:       cfg.Crypto.ArgonThreads,
		VerifierIterations: cfg.Crypto.VerifierIterations,
	})
	return NewServicesWithKeys(storages, v, keys, cfg.Recovery.Parallelism, logger)
}

// NewServicesWithKeys is NewServices with an explicit key chain.
func NewServicesWithKeys(storages *store.Storages, v vault.CredentialVault, keys crypto.KeyChainService, parallelism int, logger *logger.Logger) *Services {
	validator := validators.NewVaultValidator()
	ids := utils.NewUUIDGenerator()

	entries := NewEntryStore(storages, keys, validator, ids, logger.Component("entries"))
	categories := NewCategoryService(storages, validator, ids, logger.Component("categories"))

	return &Services{
		Verifier:   NewCredentialVerifier(storages.Credentials, v, keys, logger.Component("verifier")),
		Entries:    entries,
		Categories: categories,
		Snapshots:  NewSnapshotService(storages, categories, validator, logger.Component("snapshot")),
		Recovery:   NewRecoveryEngine(storages, entries, keys, parallelism, logger.Component("recovery")),
	}
}
