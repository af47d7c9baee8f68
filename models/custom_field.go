// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CustomFieldKind defines how the value of a custom field must be treated.
type CustomFieldKind string

const (
	// FieldText is a plain, searchable value.
	FieldText CustomFieldKind = "text"

	// FieldPassword is a secret value. It is never matched by search.
	FieldPassword CustomFieldKind = "password"

	// FieldEmail is an e-mail address.
	FieldEmail CustomFieldKind = "email"

	// FieldURL is a link to a resource.
	FieldURL CustomFieldKind = "url"

	// FieldNumber is a numeric value kept as a string.
	FieldNumber CustomFieldKind = "number"
)

// IsKnown reports whether k is one of the kinds above.
func (k CustomFieldKind) IsKnown() bool {
	switch k {
	case FieldText, FieldPassword, FieldEmail, FieldURL, FieldNumber:
		return true
	}
	return false
}

// CustomField is a user-defined name/value pair attached to an entry.
// The order of custom fields inside an entry is preserved.
type CustomField struct {
	Name  string          `json:"name"`
	Value string          `json:"value"`
	Kind  CustomFieldKind `json:"type"`
}

// IsSecret reports whether the field holds secret material.
func (f CustomField) IsSecret() bool {
	return f.Kind == FieldPassword
}
