// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"

	"github.com/TuPhung369/PasswordEpic/models"
)

const (
	saltSize = 16
	keySize  = 32
)

// Params tunes the key derivation functions.
type Params struct {
	// Argon2id parameters of the encryption KDF.
	ArgonTime    uint32
	ArgonMemory  uint32 // KiB
	ArgonThreads uint8

	// VerifierIterations is the PBKDF2 round count of the verification hash.
	VerifierIterations int
}

// DefaultParams returns the parameters recommended by OWASP (2024):
//   - Argon2id: 1 iteration, 64 MiB, 4 threads
//   - PBKDF2-SHA256: 100 000 iterations
func DefaultParams() Params {
	return Params{
		ArgonTime:          1,
		ArgonMemory:        64 * 1024, // 64 MiB
		ArgonThreads:       4,
		VerifierIterations: 100_000,
	}
}

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	params Params
}

// NewKeyChainService constructs a [KeyChainService] with [DefaultParams].
func NewKeyChainService() KeyChainService {
	return NewKeyChainServiceWithParams(DefaultParams())
}

// NewKeyChainServiceWithParams constructs a [KeyChainService] with explicit
// parameters. Zero fields fall back to their defaults.
func NewKeyChainServiceWithParams(p Params) KeyChainService {
	def := DefaultParams()
	if p.ArgonTime == 0 {
		p.ArgonTime = def.ArgonTime
	}
	if p.ArgonMemory == 0 {
		p.ArgonMemory = def.ArgonMemory
	}
	if p.ArgonThreads == 0 {
		p.ArgonThreads = def.ArgonThreads
	}
	if p.VerifierIterations <= 0 {
		p.VerifierIterations = def.VerifierIterations
	}
	return &keyChainService{params: p}
}

// GenerateSalt implements [KeyChainService]. It reads 16 random bytes from
// the OS CSPRNG.
func (k *keyChainService) GenerateSalt() (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// DeriveKey implements [KeyChainService]. The salt string is used as-is, so
// historical plain-text salts and generated base64 salts derive the same way.
func (k *keyChainService) DeriveKey(secret, salt string) []byte {
	return argon2.IDKey(
		[]byte(secret),
		[]byte(salt),
		k.params.ArgonTime,
		k.params.ArgonMemory,
		k.params.ArgonThreads,
		keySize,
	)
}

func (k *keyChainService) BuildCandidateSecrets(components models.KeyMaterial, rawSecret string) []string {
	return BuildCandidateSecrets(components, rawSecret)
}

func (k *keyChainService) CandidatesFor(derivationVersion int, components models.KeyMaterial, rawSecret string) []string {
	return CandidatesFor(derivationVersion, components, rawSecret)
}

// Seal implements [KeyChainService]. GCM appends the tag to the ciphertext;
// it is split off so that ciphertext, nonce and tag are stored as separate
// fields.
func (k *keyChainService) Seal(plaintext string, key []byte) (models.PasswordCipher, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return models.PasswordCipher{}, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return models.PasswordCipher{}, fmt.Errorf("generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	tagStart := len(sealed) - gcm.Overhead()

	return models.PasswordCipher{
		Ciphertext: base64.StdEncoding.EncodeToString(sealed[:tagStart]),
		IV:         base64.StdEncoding.EncodeToString(nonce),
		AuthTag:    base64.StdEncoding.EncodeToString(sealed[tagStart:]),
	}, nil
}

// Open implements [KeyChainService].
func (k *keyChainService) Open(c models.PasswordCipher, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(c.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext: %w", ErrMalformedCipher, err)
	}
	nonce, err := base64.StdEncoding.DecodeString(c.IV)
	if err != nil {
		return "", fmt.Errorf("%w: iv: %w", ErrMalformedCipher, err)
	}
	tag, err := base64.StdEncoding.DecodeString(c.AuthTag)
	if err != nil {
		return "", fmt.Errorf("%w: auth tag: %w", ErrMalformedCipher, err)
	}
	if len(nonce) != gcm.NonceSize() || len(tag) != gcm.Overhead() {
		return "", fmt.Errorf("%w: iv=%d tag=%d bytes", ErrMalformedCipher, len(nonce), len(tag))
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrAuthenticationFailed
	}
	return string(plaintext), nil
}

// VerificationHash implements [KeyChainService]. PBKDF2 keeps the proof
// independent from the Argon2id encryption keys.
func (k *keyChainService) VerificationHash(secret, salt string) string {
	sum := pbkdf2.Key([]byte(secret), []byte(salt), k.params.VerifierIterations, keySize, sha256.New)
	return base64.StdEncoding.EncodeToString(sum)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeyLength, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
