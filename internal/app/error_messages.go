// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing wording of vault outcomes.
//
// All Msg* constants are human-readable strings printed by the command line
// tools. Keeping them in one place ensures consistent wording, and
// [UserMessage] picks the right one for an error returned by the service
// layer.
package app

import (
	"errors"

	"github.com/TuPhung369/PasswordEpic/internal/service"
	"github.com/TuPhung369/PasswordEpic/internal/store"
)

const (
	// MsgNotConfigured is shown when no master password has been set up.
	MsgNotConfigured = "vault is not set up, run `vault init` first"

	// MsgInvalidMasterPassword is shown when the master password does not
	// match the stored verification hash.
	MsgInvalidMasterPassword = "invalid master password"

	// MsgCannotDecrypt is shown when the master password is correct but an
	// entry does not open with it. The entry was most likely written by an
	// older version with a different key layout.
	MsgCannotDecrypt = "entry cannot be decrypted with this master password, run `vault recover` to check the vault"

	// MsgCorruptedData is shown when the stored vault cannot be parsed.
	MsgCorruptedData = "stored vault data is corrupted or incompatible, run `vault recover` or restore an export"

	// MsgStorageFailure is shown when the vault file cannot be read or
	// written.
	MsgStorageFailure = "vault storage is unavailable"

	// MsgInvalidDataProvided is shown when an entry, category or import file
	// fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgNotFound is shown when the addressed entry or category does not
	// exist.
	MsgNotFound = "not found"

	// MsgDefaultCategory is shown when deleting a built-in category.
	MsgDefaultCategory = "built-in categories cannot be deleted"

	// MsgCategoryExists is shown when creating a category twice.
	MsgCategoryExists = "category already exists"

	// MsgVaultTimeout is shown when the credential vault did not answer in
	// time.
	MsgVaultTimeout = "credential vault did not respond in time"

	// MsgVaultUnavailable is shown when the credential vault is not
	// supported, not enrolled or locked out.
	MsgVaultUnavailable = "credential vault is unavailable, use the master password"

	// MsgRecoveryExhausted is shown when recovery could not open an entry
	// with any candidate key.
	MsgRecoveryExhausted = "entry could not be recovered with this master password"

	// MsgEncryptionFailure is shown when a password could not be encrypted.
	// Nothing was written.
	MsgEncryptionFailure = "password could not be encrypted, nothing was saved"

	// MsgInternalError is shown for every other failure.
	MsgInternalError = "internal error"
)

// UserMessage maps err to the message shown to the user. A wrong master
// password and data that does not decrypt get different messages; only the
// latter suggests running recovery.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrConfiguration):
		return MsgNotConfigured
	case errors.Is(err, service.ErrInvalidCredential):
		return MsgInvalidMasterPassword
	case errors.Is(err, service.ErrDecryption):
		return MsgCannotDecrypt
	case errors.Is(err, store.ErrCorruptedData):
		return MsgCorruptedData
	case errors.Is(err, service.ErrDefaultCategory):
		return MsgDefaultCategory
	case errors.Is(err, service.ErrCategoryExists):
		return MsgCategoryExists
	case errors.Is(err, service.ErrValidation):
		return MsgInvalidDataProvided
	case errors.Is(err, service.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, service.ErrTimeout):
		return MsgVaultTimeout
	case errors.Is(err, service.ErrVaultUnavailable):
		return MsgVaultUnavailable
	case errors.Is(err, service.ErrRecoveryExhausted):
		return MsgRecoveryExhausted
	case errors.Is(err, service.ErrEncryption):
		return MsgEncryptionFailure
	case errors.Is(err, service.ErrStorage):
		return MsgStorageFailure
	default:
		return MsgInternalError
	}
}
