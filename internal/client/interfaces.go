// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// SecretReader asks the user for a secret.
type SecretReader interface {
	// ReadSecret shows prompt and returns what the user typed without
	// echoing it.
	ReadSecret(prompt string) (string, error)
}

// SecretReaderFunc adapts a plain function to [SecretReader].
type SecretReaderFunc func(prompt string) (string, error)

func (f SecretReaderFunc) ReadSecret(prompt string) (string, error) {
	return f(prompt)
}
