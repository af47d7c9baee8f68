package models

import "time"

// VerificationMaterial is the stored proof of the master secret.
type VerificationMaterial struct {
	Hash           string
	Salt           string
	LastVerifiedAt *time.Time
}

// IsSet reports whether a verification hash has been stored.
func (v VerificationMaterial) IsSet() bool {
	return v.Hash != "" && v.Salt != ""
}
