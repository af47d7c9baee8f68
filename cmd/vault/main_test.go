package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TuPhung369/PasswordEpic/internal/app"
	"github.com/TuPhung369/PasswordEpic/internal/service"
	"github.com/TuPhung369/PasswordEpic/internal/vault"
	"github.com/TuPhung369/PasswordEpic/models"
)

// scriptedReader answers prompts from a fixed list.
type scriptedReader struct {
	answers []string
	prompts []string
}

func (r *scriptedReader) ReadSecret(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.answers) == 0 {
		return "", errors.New("unexpected prompt " + prompt)
	}
	next := r.answers[0]
	r.answers = r.answers[1:]
	return next, nil
}

type testVault struct {
	t   *testing.T
	dsn string
}

func newTestVault(t *testing.T) *testVault {
	t.Setenv("CRYPTO_ARGON_MEMORY_KIB", "1024")
	t.Setenv("CRYPTO_ARGON_THREADS", "1")
	t.Setenv("CRYPTO_VERIFIER_ITERATIONS", "1000")
	t.Setenv("LOG_LEVEL", "disabled")

	return &testVault{t: t, dsn: filepath.Join(t.TempDir(), "vault.json")}
}

func (v *testVault) run(answers []string, args ...string) (string, error) {
	v.t.Helper()

	c := newCLI(models.NewAppBuildInfo("1.0.0", "2026-10-01", "abc123"), vault.Unsupported(), &scriptedReader{answers: answers})
	root := c.root()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--driver", "file", "--dsn", v.dsn))

	err := root.ExecuteContext(testContext(v.t))
	require.NoError(v.t, c.closeApp(nil, nil))
	return out.String(), err
}

func (v *testVault) mustRun(answers []string, args ...string) string {
	v.t.Helper()

	out, err := v.run(answers, args...)
	require.NoError(v.t, err, out)
	return out
}

func (v *testVault) addEntry(title, password string, extra ...string) string {
	v.t.Helper()

	out := v.mustRun([]string{"master", password}, append([]string{"add", "--title", title}, extra...)...)
	id := strings.TrimSpace(strings.TrimPrefix(out, "Saved "))
	require.NotEmpty(v.t, id)
	return id
}

func TestCLI_InitAddGet(t *testing.T) {
	v := newTestVault(t)

	out := v.mustRun([]string{"master", "master"}, "init")
	assert.Contains(t, out, "Vault is ready.")

	id := v.addEntry("Mail", "p1", "--username", "bob", "--tag", "work", "--field", "pin=1234", "--secret-field", "recovery=abcd")

	out = v.mustRun([]string{"master"}, "get", id)
	assert.Contains(t, out, "Username: bob")
	assert.Contains(t, out, "Password: ********")
	assert.Contains(t, out, "pin: 1234")
	assert.Contains(t, out, "recovery: ********")

	out = v.mustRun([]string{"master"}, "get", id, "--show")
	assert.Contains(t, out, "Password: p1")
	assert.Contains(t, out, "recovery: abcd")

	out = v.mustRun(nil, "list")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Mail")

	out = v.mustRun(nil, "frequent")
	assert.Contains(t, out, id)

	out = v.mustRun(nil, "search", "MAIL")
	assert.Contains(t, out, id)

	out = v.mustRun(nil, "search", "abcd")
	assert.Contains(t, out, "No entries.")
}

func TestCLI_InitRefusesConfiguredVault(t *testing.T) {
	v := newTestVault(t)
	v.mustRun([]string{"master", "master"}, "init")

	_, err := v.run([]string{"other", "other"}, "init")
	assert.ErrorContains(t, err, "already set up")

	v.mustRun([]string{"other", "other"}, "init", "--force")
	_, err = v.run([]string{"master"}, "unlock")
	assert.ErrorIs(t, err, service.ErrInvalidCredential)
}

func TestCLI_InitForceKeepsEntriesReadable(t *testing.T) {
	v := newTestVault(t)
	v.mustRun([]string{"master", "master"}, "init")
	id := v.addEntry("Mail", "p1")

	_, err := v.run([]string{"other", "other"}, "init", "--force")
	require.ErrorIs(t, err, errVaultNotEmpty)
	assert.ErrorContains(t, err, "vault migrate")

	out := v.mustRun([]string{"master"}, "get", id, "--show")
	assert.Contains(t, out, "Password: p1")

	_, err = v.run([]string{"other"}, "unlock")
	assert.ErrorIs(t, err, service.ErrInvalidCredential)
}

func TestCLI_InitRejectsMismatch(t *testing.T) {
	v := newTestVault(t)

	_, err := v.run([]string{"master", "masterr"}, "init")
	assert.ErrorIs(t, err, errSecretMismatch)
}

func TestCLI_WrongPassword(t *testing.T) {
	v := newTestVault(t)
	v.mustRun([]string{"master", "master"}, "init")
	id := v.addEntry("Mail", "p1")

	_, err := v.run([]string{"wrong"}, "get", id)
	require.Error(t, err)
	assert.Equal(t, app.MsgInvalidMasterPassword, app.UserMessage(err))
}

func TestCLI_NotConfigured(t *testing.T) {
	v := newTestVault(t)

	_, err := v.run([]string{"master"}, "unlock")
	require.Error(t, err)
	assert.Equal(t, app.MsgNotConfigured, app.UserMessage(err))
}

func TestCLI_Categories(t *testing.T) {
	v := newTestVault(t)
	v.mustRun([]string{"master", "master"}, "init")

	out := v.mustRun(nil, "categories", "add", "Travel", "--color", "#112233")
	catID := strings.TrimSpace(strings.TrimPrefix(out, "Created "))
	require.NotEmpty(t, catID)

	id := v.addEntry("Hotel", "p1", "--category", catID)

	v.mustRun(nil, "categories", "rename", catID, "Trips")
	out = v.mustRun(nil, "categories")
	assert.Contains(t, out, "Trips")
	assert.Contains(t, out, "Uncategorized (default)")

	v.mustRun(nil, "categories", "delete", catID)
	out = v.mustRun(nil, "list", "--category", models.UncategorizedID)
	assert.Contains(t, out, id)

	_, err := v.run(nil, "categories", "delete", models.UncategorizedID)
	assert.ErrorIs(t, err, service.ErrDefaultCategory)
}

func TestCLI_RecoverAndMigrate(t *testing.T) {
	v := newTestVault(t)
	v.mustRun([]string{"master", "master"}, "init")
	id := v.addEntry("Mail", "p1")

	out := v.mustRun([]string{"master"}, "recover")
	assert.Contains(t, out, "Entries:   1")
	assert.Contains(t, out, "Recovered: 1")

	out = v.mustRun([]string{"master", "renewed", "renewed"}, "migrate")
	assert.Contains(t, out, "Migrated 1 entries")

	_, err := v.run([]string{"master"}, "unlock")
	assert.ErrorIs(t, err, service.ErrInvalidCredential)

	out = v.mustRun([]string{"renewed"}, "get", id, "--show")
	assert.Contains(t, out, "Password: p1")
}

func TestCLI_ExportImport(t *testing.T) {
	v := newTestVault(t)
	v.mustRun([]string{"master", "master"}, "init")
	id := v.addEntry("Mail", "p1")

	snapshot := filepath.Join(t.TempDir(), "snapshot.json")
	v.mustRun([]string{"master"}, "export", "--out", snapshot)

	info, err := os.Stat(snapshot)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	v.mustRun([]string{"master"}, "delete", id)
	out := v.mustRun(nil, "list")
	assert.Contains(t, out, "No entries.")

	v.mustRun([]string{"master"}, "import", snapshot)
	out = v.mustRun([]string{"master"}, "get", id, "--show")
	assert.Contains(t, out, "Password: p1")
}

func TestCLI_Version(t *testing.T) {
	v := newTestVault(t)

	out := v.mustRun(nil, "version")
	assert.Contains(t, out, "Build version: 1.0.0")
	assert.Contains(t, out, "Build commit: abc123")
	assert.NoFileExists(t, v.dsn)
}

// testContext returns a context canceled when the test finishes, like
// testing.T.Context on newer Go releases.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
