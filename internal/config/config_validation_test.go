package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *StructuredConfig)
		wantErr error
	}{
		{name: "defaults", mutate: func(*StructuredConfig) {}},
		{name: "unknown driver", mutate: func(c *StructuredConfig) { c.Storage.Driver = "postgres" }, wantErr: ErrInvalidStorageConfigs},
		{name: "empty dsn", mutate: func(c *StructuredConfig) { c.Storage.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "memory dsn with bolt", mutate: func(c *StructuredConfig) { c.Storage.DSN = ":memory:" }, wantErr: ErrInvalidStorageConfigs},
		{name: "memory dsn with file", mutate: func(c *StructuredConfig) {
			c.Storage.Driver = DriverFile
			c.Storage.DSN = ":memory:"
		}},
		{name: "zero argon threads", mutate: func(c *StructuredConfig) { c.Crypto.ArgonThreads = 0 }, wantErr: ErrInvalidCryptoConfigs},
		{name: "weak verifier", mutate: func(c *StructuredConfig) { c.Crypto.VerifierIterations = 10 }, wantErr: ErrInvalidCryptoConfigs},
		{name: "zero parallelism", mutate: func(c *StructuredConfig) { c.Recovery.Parallelism = 0 }, wantErr: ErrInvalidRecoveryConfigs},
		{name: "unknown log level", mutate: func(c *StructuredConfig) { c.Log.Level = "loud" }, wantErr: ErrInvalidLogConfigs},
		{name: "upper-case log level", mutate: func(c *StructuredConfig) { c.Log.Level = "DEBUG" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
