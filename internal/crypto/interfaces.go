package crypto

import "github.com/TuPhung369/PasswordEpic/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService owns every cryptographic primitive of the vault. It knows
// nothing about storage or callers; its only job is turning secrets into
// keys and protecting password values with them.
//
// Scheme for one password field:
//
//	Salt         = GenerateSalt()
//	Key          = DeriveKey(secret, Salt)            (Argon2id)
//	IV, CT, Tag  = Seal(password, Key)                (AES-256-GCM)
//	password     = Open({CT, Salt, IV, Tag}, Key)
//
// The master secret proof is computed separately:
//
//	Hash = VerificationHash(secret, verificationSalt) (PBKDF2-SHA256)
type KeyChainService interface {
	// GenerateSalt returns 16 random bytes, base64-encoded.
	GenerateSalt() (string, error)

	// DeriveKey derives a 256-bit key from secret and salt with Argon2id.
	// It is deterministic and performs no I/O.
	DeriveKey(secret, salt string) []byte

	// BuildCandidateSecrets returns the historical secret layouts in
	// priority order: dynamic-only, static-only, combined, raw secret,
	// then one candidate per alternate salt.
	BuildCandidateSecrets(components models.KeyMaterial, rawSecret string) []string

	// CandidatesFor orders the candidate secrets for an entry stamped with
	// the given derivation version.
	CandidatesFor(derivationVersion int, components models.KeyMaterial, rawSecret string) []string

	// Seal encrypts plaintext under key with a fresh nonce. The returned
	// cipher has an empty Salt; the caller records the salt it used.
	Seal(plaintext string, key []byte) (models.PasswordCipher, error)

	// Open authenticates and decrypts c with key. It returns
	// ErrAuthenticationFailed when the key is wrong or the data was altered.
	Open(c models.PasswordCipher, key []byte) (string, error)

	// VerificationHash computes the stored proof of the master secret.
	VerificationHash(secret, salt string) string
}
