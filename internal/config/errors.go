package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates an unknown driver or an empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidCryptoConfigs indicates key derivation parameters below the
	// safe minimum.
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
	// ErrInvalidRecoveryConfigs indicates a non-positive parallelism.
	ErrInvalidRecoveryConfigs = errors.New("invalid recovery configuration")
	// ErrInvalidLogConfigs indicates an unknown log level.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
)
