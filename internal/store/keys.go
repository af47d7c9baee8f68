package store

import "strings"

// Logical keys of the vault. The names are part of the on-disk format and of
// exported snapshots; they must not change.
const (
	KeyEntries    = "optimized_passwords_v2"
	KeyCategories = "password_categories"

	KeyMasterHash         = "master_password_hash"
	KeyMasterSalt         = "master_password_salt"
	KeyMasterLastVerified = "master_password_last_verified"
	KeyVaultUnlockEnabled = "biometric_enabled"

	KeyLoginTimestamp = "dynamic_mp_login_timestamp"
	KeySessionSalt    = "dynamic_mp_session_salt"
	KeyFixedSalt      = "static_mp_fixed_salt"
	KeyUserUUID       = "dynamic_mp_user_uuid"

	// AlternateSaltPrefix marks every key that holds an alternate salt.
	AlternateSaltPrefix = "alt_mp_salt_"
)

// IsAlternateSaltKey reports whether key follows the alternate salt naming
// convention.
func IsAlternateSaltKey(key string) bool {
	return strings.HasPrefix(key, AlternateSaltPrefix) && len(key) > len(AlternateSaltPrefix)
}
