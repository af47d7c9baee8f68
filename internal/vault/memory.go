// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"context"
	"sync"
)

// MemoryVault is a process-local [CredentialVault]. It never prompts.
type MemoryVault struct {
	mu        sync.RWMutex
	supported bool
	secrets   map[string]string
}

// NewMemoryVault returns an empty vault that reports itself as supported.
func NewMemoryVault() *MemoryVault {
	return &MemoryVault{
		supported: true,
		secrets:   make(map[string]string),
	}
}

// Unsupported returns a vault for hosts without biometric hardware. Every
// operation except IsSupported fails with [ErrUnavailable].
func Unsupported() *MemoryVault {
	return &MemoryVault{secrets: make(map[string]string)}
}

func (m *MemoryVault) IsSupported(_ context.Context) (bool, error) {
	return m.supported, nil
}

func (m *MemoryVault) Set(ctx context.Context, name, secret string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.supported {
		return ErrUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets[name] = secret
	return nil
}

func (m *MemoryVault) Get(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !m.supported {
		return "", ErrUnavailable
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	secret, ok := m.secrets[name]
	if !ok {
		return "", ErrNoCredential
	}
	return secret, nil
}

func (m *MemoryVault) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets = make(map[string]string)
	return nil
}
