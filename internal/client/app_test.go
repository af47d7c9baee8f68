package client

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TuPhung369/PasswordEpic/internal/config"
	"github.com/TuPhung369/PasswordEpic/internal/logger"
	"github.com/TuPhung369/PasswordEpic/internal/service"
	"github.com/TuPhung369/PasswordEpic/internal/vault"
	"github.com/TuPhung369/PasswordEpic/models"
)

func testConfig(t *testing.T, driver string) *config.StructuredConfig {
	t.Helper()

	return &config.StructuredConfig{
		Storage: config.Storage{
			Driver: driver,
			DSN:    filepath.Join(t.TempDir(), "vault.db"),
		},
		Crypto: config.Crypto{
			ArgonTime:          1,
			ArgonMemoryKiB:     1024,
			ArgonThreads:       1,
			VerifierIterations: 1000,
		},
		Recovery: config.Recovery{Parallelism: 2},
		Log:      config.Log{Level: "debug"},
	}
}

func newTestApp(t *testing.T, driver string, v vault.CredentialVault) *App {
	t.Helper()

	app, err := NewAppWithLogger(testContext(t), testConfig(t, driver), v, models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func fixedSecret(secret string) SecretReader {
	return SecretReaderFunc(func(string) (string, error) { return secret, nil })
}

func TestNewApp_AllDrivers(t *testing.T) {
	for _, driver := range []string{config.DriverBolt, config.DriverSQLite, config.DriverFile} {
		t.Run(driver, func(t *testing.T) {
			ctx := testContext(t)
			app := newTestApp(t, driver, vault.Unsupported())

			require.NoError(t, app.Services.Verifier.StoreMasterSecret(ctx, "master", false))
			require.NoError(t, app.Unlock(ctx, "master"))

			saved, err := app.Services.Entries.Save(ctx, models.Entry{Title: "Mail", Password: "p1"}, "master")
			require.NoError(t, err)

			password, found, err := app.Services.Entries.DecryptPasswordField(ctx, saved.ID, "master")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "p1", password)
		})
	}
}

func TestNewApp_MissingVersion(t *testing.T) {
	_, err := NewAppWithLogger(testContext(t), testConfig(t, config.DriverFile), vault.Unsupported(), models.NewAppBuildInfo("", "", ""), logger.Nop())
	assert.ErrorIs(t, err, service.ErrVersionIsNotSpecified)
}

func TestResolveSecret_PromptsWhenVaultUnlockDisabled(t *testing.T) {
	ctx := testContext(t)
	app := newTestApp(t, config.DriverFile, vault.Unsupported())
	require.NoError(t, app.Services.Verifier.StoreMasterSecret(ctx, "master", false))

	secret, err := app.ResolveSecret(ctx, fixedSecret("master"))
	require.NoError(t, err)
	assert.Equal(t, "master", secret)

	_, err = app.ResolveSecret(ctx, fixedSecret("wrong"))
	assert.ErrorIs(t, err, service.ErrInvalidCredential)
}

func TestResolveSecret_UsesCredentialVault(t *testing.T) {
	ctx := testContext(t)
	app := newTestApp(t, config.DriverFile, vault.NewMemoryVault())
	require.NoError(t, app.Services.Verifier.StoreMasterSecret(ctx, "master", true))

	prompt := SecretReaderFunc(func(string) (string, error) {
		return "", errors.New("must not prompt")
	})

	secret, err := app.ResolveSecret(ctx, prompt)
	require.NoError(t, err)
	assert.Equal(t, "master", secret)
}

func TestResolveSecret_OutdatedVaultSecretFallsBackToPrompt(t *testing.T) {
	ctx := testContext(t)
	mv := vault.NewMemoryVault()
	app := newTestApp(t, config.DriverFile, mv)

	require.NoError(t, app.Services.Verifier.StoreMasterSecret(ctx, "master", true))
	require.NoError(t, mv.Set(ctx, service.VaultCredentialName, "stale"))

	secret, err := app.ResolveSecret(ctx, fixedSecret("master"))
	require.NoError(t, err)
	assert.Equal(t, "master", secret)
}

func TestResolveSecret_PromptError(t *testing.T) {
	ctx := testContext(t)
	app := newTestApp(t, config.DriverFile, vault.Unsupported())
	require.NoError(t, app.Services.Verifier.StoreMasterSecret(ctx, "master", false))

	_, err := app.ResolveSecret(ctx, SecretReaderFunc(func(string) (string, error) {
		return "", errors.New("no tty")
	}))
	assert.ErrorContains(t, err, "no tty")
}

// testContext returns a context canceled when the test finishes, like
// testing.T.Context on newer Go releases.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
