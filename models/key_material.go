// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// KeyMaterial holds the named values that were historically concatenated
// into the secret fed to key derivation. Any subset may be empty.
//
// The dynamic group is created at login time, the static group once per
// installation. Alternate salts are ad hoc values found in storage under
// the alternate-salt key prefix.
type KeyMaterial struct {
	// dynamic group
	LoginTimestamp string
	SessionSalt    string

	// static group
	FixedSalt string
	UserUUID  string

	AlternateSalts []AlternateSalt
}

// AlternateSalt is a salt value discovered by storage key naming convention.
type AlternateSalt struct {
	Key   string
	Value string
}

// HasDynamic reports whether any dynamic component is present.
func (k KeyMaterial) HasDynamic() bool {
	return k.LoginTimestamp != "" || k.SessionSalt != ""
}

// HasStatic reports whether any static component is present.
func (k KeyMaterial) HasStatic() bool {
	return k.FixedSalt != "" || k.UserUUID != ""
}

// Derivation versions stamped on persisted entries.
const (
	// DerivationLegacy marks entries written before versioning existed, whose
	// key secret may be any historical concatenation of KeyMaterial.
	DerivationLegacy = 1

	// DerivationCanonical marks entries whose key was derived from the raw
	// master secret and the entry's own salt.
	DerivationCanonical = 2
)
