// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// UnlockStatus is the outcome of an unlock attempt through the credential vault.
type UnlockStatus int

const (
	UnlockSuccess UnlockStatus = iota
	UnlockNotEnabled
	UnlockNotSupported
	UnlockTimeout
	UnlockUserCancelled
	UnlockNoStoredCredential
	UnlockUnknownFailure
)

var unlockStatusNames = map[UnlockStatus]string{
	UnlockSuccess:            "success",
	UnlockNotEnabled:         "not_enabled",
	UnlockNotSupported:       "not_supported",
	UnlockTimeout:            "timeout",
	UnlockUserCancelled:      "user_cancelled",
	UnlockNoStoredCredential: "no_stored_credential",
	UnlockUnknownFailure:     "unknown_failure",
}

// String implements fmt.Stringer.
func (s UnlockStatus) String() string {
	if name, ok := unlockStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// UnlockResult carries the vault unlock outcome. Secret is set only when
// Status is UnlockSuccess; Err carries the underlying cause for failures.
type UnlockResult struct {
	Status UnlockStatus
	Secret string
	Err    error
}

// OK reports whether the unlock succeeded.
func (r UnlockResult) OK() bool {
	return r.Status == UnlockSuccess
}
