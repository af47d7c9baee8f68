// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
	"strings"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Driver {
	case DriverBolt, DriverSQLite, DriverFile:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}
	if cfg.Storage.DSN == "" {
		return fmt.Errorf("%w: empty dsn", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DSN == ":memory:" && cfg.Storage.Driver != DriverFile {
		return fmt.Errorf("%w: in-memory dsn is supported by the file driver only", ErrInvalidStorageConfigs)
	}

	if cfg.Crypto.ArgonTime < 1 || cfg.Crypto.ArgonMemoryKiB < 8 || cfg.Crypto.ArgonThreads < 1 {
		return ErrInvalidCryptoConfigs
	}
	if cfg.Crypto.VerifierIterations < 1000 {
		return fmt.Errorf("%w: verifier iterations below 1000", ErrInvalidCryptoConfigs)
	}

	if cfg.Recovery.Parallelism < 1 {
		return ErrInvalidRecoveryConfigs
	}

	if !slices.Contains(logLevels, strings.ToLower(cfg.Log.Level)) {
		return fmt.Errorf("%w: unknown level %q", ErrInvalidLogConfigs, cfg.Log.Level)
	}

	return nil
}
