package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of the configuration.
type StructuredJSONConfig struct {
	Storage struct {
		Driver      string   `json:"driver"`
		DSN         string   `json:"dsn"`
		OpenTimeout Duration `json:"open_timeout"`
	} `json:"storage,omitempty"`

	Crypto struct {
		ArgonTime          uint32 `json:"argon_time"`
		ArgonMemoryKiB     uint32 `json:"argon_memory_kib"`
		ArgonThreads       uint8  `json:"argon_threads"`
		VerifierIterations int    `json:"verifier_iterations"`
	} `json:"crypto,omitempty"`

	Recovery struct {
		Parallelism int `json:"parallelism"`
	} `json:"recovery,omitempty"`

	Log struct {
		Level string `json:"level"`
		File  string `json:"file"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Storage: Storage{
			Driver:      jsonCfg.Storage.Driver,
			DSN:         jsonCfg.Storage.DSN,
			OpenTimeout: time.Duration(jsonCfg.Storage.OpenTimeout),
		},
		Crypto: Crypto{
			ArgonTime:          jsonCfg.Crypto.ArgonTime,
			ArgonMemoryKiB:     jsonCfg.Crypto.ArgonMemoryKiB,
			ArgonThreads:       jsonCfg.Crypto.ArgonThreads,
			VerifierIterations: jsonCfg.Crypto.VerifierIterations,
		},
		Recovery: Recovery{
			Parallelism: jsonCfg.Recovery.Parallelism,
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
			File:  jsonCfg.Log.File,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
