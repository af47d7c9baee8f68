package config

import (
	"os"
	"path/filepath"
	"time"
)

const dataDirName = ".passwordepic"

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			Driver:      DriverBolt,
			DSN:         filepath.Join(defaultDataDir(), "vault.db"),
			OpenTimeout: 5 * time.Second,
		},
		Crypto: Crypto{
			ArgonTime:          1,
			ArgonMemoryKiB:     64 * 1024,
			ArgonThreads:       4,
			VerifierIterations: 100_000,
		},
		Recovery: Recovery{Parallelism: 2},
		Log:      Log{Level: "info"},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dataDirName
	}
	return filepath.Join(home, dataDirName)
}
