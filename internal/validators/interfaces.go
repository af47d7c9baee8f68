// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks vault records before they are written:
// entries on save, categories on create and update, and snapshots on
// import. A failed check returns one of the errors in errors.go, which the
// service layer reports under the validation kind.
package validators

import "context"

// Validator checks value. fields narrows the check to the named fields;
// without them every default field of the value's type is checked.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
