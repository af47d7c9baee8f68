package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/TuPhung369/PasswordEpic/internal/config"
	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/internal/service"
	"github.com/TuPhung369/PasswordEpic/internal/store"
	"github.com/TuPhung369/PasswordEpic/internal/vault"
	"github.com/TuPhung369/PasswordEpic/models"
)

// MasterPasswordPrompt is the prompt shown when the secret is typed in.
const MasterPasswordPrompt = "Master password: "

// App owns every long-lived object of one vault process.
type App struct {
	Config   *config.StructuredConfig
	Services *service.Services
	Info     service.AppInfoService

	storages  *store.Storages
	logCloser io.Closer
	logger    *logger.Logger
}

// NewApp builds the logger, opens the configured storage and wires the
// services on top of it. The caller must Close the returned App.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, v vault.CredentialVault, info models.AppBuildInfo) (*App, error) {
	log, logCloser, err := logger.NewVaultLogger("vault", cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	app, err := NewAppWithLogger(ctx, cfg, v, info, log)
	if err != nil {
		logCloser.Close()
		return nil, err
	}
	app.logCloser = logCloser
	return app, nil
}

// NewAppWithLogger is NewApp with a caller-owned logger.
func NewAppWithLogger(ctx context.Context, cfg *config.StructuredConfig, v vault.CredentialVault, info models.AppBuildInfo, log *logger.Logger) (*App, error) {
	appInfo, err := service.NewAppInfoService(info, log)
	if err != nil {
		return nil, fmt.Errorf("init app info: %w", err)
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Err(err).Str("func", "client.NewAppWithLogger").Msg("error creating storages")
		return nil, fmt.Errorf("create storages: %w", err)
	}

	return &App{
		Config:   cfg,
		Services: service.NewServices(storages, v, *cfg, log),
		Info:     appInfo,
		storages: storages,
		logger:   log,
	}, nil
}

// Context returns ctx carrying the application logger, so that services
// log through it.
func (a *App) Context(ctx context.Context) context.Context {
	return a.logger.WithContext(ctx)
}

// Unlock verifies secret and prepares the entry store for the session.
func (a *App) Unlock(ctx context.Context, secret string) error {
	if err := a.Services.Verifier.VerifySecret(ctx, secret); err != nil {
		return err
	}
	return a.Services.Entries.Initialize(ctx, secret)
}

// ResolveSecret returns a verified master secret. The credential vault is
// tried first when vault unlock is enabled; any outcome other than success
// falls back to asking through r.
func (a *App) ResolveSecret(ctx context.Context, r SecretReader) (string, error) {
	res := a.Services.Verifier.UnlockViaVault(ctx)
	if res.OK() {
		err := a.Unlock(ctx, res.Secret)
		switch {
		case err == nil:
			return res.Secret, nil
		case !errors.Is(err, service.ErrInvalidCredential):
			return "", err
		}
		a.logger.Warn().Msg("secret stored in the credential vault is outdated")
	} else if res.Status != models.UnlockNotEnabled {
		a.logger.Debug().Str("status", res.Status.String()).Msg("vault unlock unavailable, asking for the master password")
	}

	secret, err := r.ReadSecret(MasterPasswordPrompt)
	if err != nil {
		return "", fmt.Errorf("read master password: %w", err)
	}
	if err = a.Unlock(ctx, secret); err != nil {
		return "", err
	}
	return secret, nil
}

// Close releases the storage and the log file.
func (a *App) Close() error {
	var errs []error
	if a.storages != nil {
		errs = append(errs, a.storages.Close())
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
	}
	return errors.Join(errs...)
}
