package vault

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/credential_vault_mock.go -package=mock

// CredentialVault is the biometric/secure-enclave gated secret store.
//
// Get may block on a user prompt; implementations should honour ctx
// cancellation where the platform allows it.
type CredentialVault interface {
	// IsSupported reports whether the platform can gate a credential
	// behind biometrics. The check may be expensive.
	IsSupported(ctx context.Context) (bool, error)

	// Set stores secret under name, replacing any previous value.
	Set(ctx context.Context, name, secret string) error

	// Get returns the secret stored under name, or ErrNoCredential.
	Get(ctx context.Context, name string) (string, error)

	// Reset removes every stored credential.
	Reset(ctx context.Context) error
}
