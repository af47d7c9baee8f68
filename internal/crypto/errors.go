package crypto

import "errors"

var (
	// ErrAuthenticationFailed is returned by Open when the GCM tag does not
	// verify: the key is wrong or the ciphertext was tampered with.
	ErrAuthenticationFailed = errors.New("message authentication failed")

	// ErrMalformedCipher is returned when a stored cipher field cannot be
	// decoded or has the wrong length.
	ErrMalformedCipher = errors.New("malformed cipher fields")

	// ErrInvalidKeyLength is returned when a key is not 32 bytes long.
	ErrInvalidKeyLength = errors.New("invalid key length")
)
