// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Storage drivers accepted by [Storage.Driver].
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

// StructuredConfig is the top-level configuration container for the vault.
// It is populated by merging defaults, an optional JSON file, environment
// variables (and a .env file) and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Storage selects and locates the persisted key/value store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Crypto tunes the key derivation functions.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Recovery tunes the emergency recovery engine.
	Recovery Recovery `envPrefix:"RECOVERY_"`

	// Log configures the application logger.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the --config flag.
	JSONFilePath string `env:"CONFIG"`

	// DotEnvPath is the optional path to a .env file loaded before the
	// environment is parsed. Populated via the --env-file flag.
	DotEnvPath string `env:"ENV_FILE"`
}

// Storage holds the persisted store settings.
type Storage struct {
	// Driver is one of "bolt", "sqlite" or "file".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the database file path. For the file driver ":memory:" keeps
	// everything in process memory.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`

	// OpenTimeout bounds how long opening the store may wait for a file lock.
	// Env: STORAGE_OPEN_TIMEOUT
	OpenTimeout time.Duration `env:"OPEN_TIMEOUT"`
}

// Crypto holds key derivation parameters.
type Crypto struct {
	// Env: CRYPTO_ARGON_TIME
	ArgonTime uint32 `env:"ARGON_TIME"`
	// Env: CRYPTO_ARGON_MEMORY_KIB
	ArgonMemoryKiB uint32 `env:"ARGON_MEMORY_KIB"`
	// Env: CRYPTO_ARGON_THREADS
	ArgonThreads uint8 `env:"ARGON_THREADS"`
	// Env: CRYPTO_VERIFIER_ITERATIONS
	VerifierIterations int `env:"VERIFIER_ITERATIONS"`
}

// Recovery holds emergency recovery settings.
type Recovery struct {
	// Parallelism is the number of entries attempted at the same time.
	// Every attempt runs Argon2id, so memory grows linearly with it.
	// Env: RECOVERY_PARALLELISM
	Parallelism int `env:"PARALLELISM"`
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File is the log file path. Empty means stderr.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// sources in the following priority order (later sources win for non-zero
// fields):
//  1. Built-in defaults
//  2. JSON file (path resolved from sources 3 and 4)
//  3. Environment variables, including a .env file
//  4. Command-line flags
//
// flags may be nil when no command line is involved.
func GetStructuredConfig(flags *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv(flags).
		withEnv().
		withFlags(flags).
		withJSON().
		build()
}
