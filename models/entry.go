// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"
)

// Entry is the decrypted, in-memory form of a login entry.
//
// An Entry exists only transiently after a successful decrypt. When it is
// returned by metadata-only reads, Password is empty and IsDecrypted is false.
type Entry struct {
	ID           string
	Title        string
	Username     string
	Password     string
	Website      string
	Notes        string
	CategoryID   string
	Tags         []string
	CustomFields []CustomField
	Favorite     bool

	CreatedAt time.Time
	UpdatedAt time.Time
	LastUsed  *time.Time

	// AccessCount is incremented each time the entry is marked as used.
	AccessCount int
	// PasswordChangeCount is incremented each time a save replaces the password.
	PasswordChangeCount int

	IsDecrypted bool
}

// PasswordCipher is the authenticated ciphertext of a single password value
// together with the salt its key was derived from. All fields are base64.
type PasswordCipher struct {
	Ciphertext string
	Salt       string
	IV         string
	AuthTag    string
}

// IsZero reports whether the cipher carries no ciphertext at all.
func (c PasswordCipher) IsZero() bool {
	return c.Ciphertext == "" && c.IV == "" && c.AuthTag == ""
}

// PersistedEntry is the on-disk form of an entry: the unencrypted metadata
// mirror plus the password ciphertext triple and the salt used for its key.
//
// The triple (EncryptedPassword, PasswordIV, PasswordAuthTag) only
// authenticates under the key derived from the master secret and
// PasswordSalt that produced it.
type PersistedEntry struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Username     string        `json:"username"`
	Website      string        `json:"website,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	CategoryID   string        `json:"category"`
	Tags         []string      `json:"tags,omitempty"`
	CustomFields []CustomField `json:"customFields,omitempty"`
	Favorite     bool          `json:"isFavorite"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	LastUsed  *time.Time `json:"lastUsed,omitempty"`

	AccessCount         int `json:"accessCount"`
	PasswordChangeCount int `json:"passwordChangeCount"`

	EncryptedPassword string `json:"encryptedPassword"`
	PasswordSalt      string `json:"passwordSalt"`
	PasswordIV        string `json:"passwordIv"`
	PasswordAuthTag   string `json:"passwordAuthTag"`

	StorageVersion    int `json:"storageVersion"`
	DerivationVersion int `json:"derivationVersion,omitempty"`
}

// StorageVersion is the on-disk layout revision written for every entry.
const StorageVersion = 2

// Cipher returns the password ciphertext carried by the persisted entry.
func (p PersistedEntry) Cipher() PasswordCipher {
	return PasswordCipher{
		Ciphertext: p.EncryptedPassword,
		Salt:       p.PasswordSalt,
		IV:         p.PasswordIV,
		AuthTag:    p.PasswordAuthTag,
	}
}

// SetCipher replaces the password ciphertext fields.
func (p *PersistedEntry) SetCipher(c PasswordCipher) {
	p.EncryptedPassword = c.Ciphertext
	p.PasswordSalt = c.Salt
	p.PasswordIV = c.IV
	p.PasswordAuthTag = c.AuthTag
}

// ApplyMetadata overwrites every non-password field of p with the values
// carried by e.
func (p *PersistedEntry) ApplyMetadata(e Entry) {
	p.ID = e.ID
	p.Title = e.Title
	p.Username = e.Username
	p.Website = e.Website
	p.Notes = e.Notes
	p.CategoryID = e.CategoryID
	p.Tags = e.Tags
	p.CustomFields = e.CustomFields
	p.Favorite = e.Favorite
	p.CreatedAt = e.CreatedAt
	p.UpdatedAt = e.UpdatedAt
	p.LastUsed = e.LastUsed
	p.AccessCount = e.AccessCount
	p.PasswordChangeCount = e.PasswordChangeCount
}

// Metadata converts p into a metadata-only Entry: Password stays empty and
// IsDecrypted is false.
func (p PersistedEntry) Metadata() Entry {
	return Entry{
		ID:                  p.ID,
		Title:               p.Title,
		Username:            p.Username,
		Website:             p.Website,
		Notes:               p.Notes,
		CategoryID:          p.CategoryID,
		Tags:                p.Tags,
		CustomFields:        p.CustomFields,
		Favorite:            p.Favorite,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
		LastUsed:            p.LastUsed,
		AccessCount:         p.AccessCount,
		PasswordChangeCount: p.PasswordChangeCount,
	}
}

// Decrypted converts p into a full Entry carrying the given plaintext password.
func (p PersistedEntry) Decrypted(password string) Entry {
	e := p.Metadata()
	e.Password = password
	e.IsDecrypted = true
	return e
}
