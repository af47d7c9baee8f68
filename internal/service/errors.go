package service

import (
	"errors"
	"fmt"
)

// Error taxonomy of the vault. Every public operation wraps its cause as
// "failed to <operation>: <kind>: <cause>", so callers can match both the
// kind and the original cause with [errors.Is].
var (
	// ErrConfiguration means no verification material has been set up.
	ErrConfiguration = errors.New("vault is not configured")

	// ErrInvalidCredential means the master secret does not match the
	// stored verification hash.
	ErrInvalidCredential = errors.New("invalid master secret")

	// ErrDecryption means authenticated decryption failed: the key is wrong
	// or the ciphertext was altered.
	ErrDecryption = errors.New("decryption failed")

	// ErrEncryption means a password could not be sealed: no random salt
	// or nonce was available, or the cipher rejected the key.
	ErrEncryption = errors.New("encryption failed")

	// ErrStorage means the persisted store could not be read or written.
	ErrStorage = errors.New("storage failure")

	// ErrValidation means an entry, category or import payload is malformed.
	ErrValidation = errors.New("validation failed")

	// ErrTimeout means a credential vault call exceeded its budget.
	ErrTimeout = errors.New("operation timed out")

	// ErrVaultUnavailable means the credential vault is not supported, not
	// enrolled or locked out.
	ErrVaultUnavailable = errors.New("credential vault unavailable")

	// ErrRecoveryExhausted means no candidate secret authenticated an entry.
	ErrRecoveryExhausted = errors.New("no recovery candidate matched")

	// ErrNotFound means the addressed entry or category does not exist.
	ErrNotFound = errors.New("not found")
)

// Causes reported under the taxonomy kinds above.
var (
	ErrDefaultCategory       = errors.New("default categories cannot be deleted")
	ErrCategoryExists        = errors.New("category already exists")
	ErrEmptySecret           = errors.New("secret is required")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// fail builds the normalized error of a public operation.
func fail(op string, kind, cause error) error {
	switch {
	case cause == nil:
		return fmt.Errorf("failed to %s: %w", op, kind)
	case errors.Is(cause, kind):
		return fmt.Errorf("failed to %s: %w", op, cause)
	default:
		return fmt.Errorf("failed to %s: %w: %w", op, kind, cause)
	}
}
