package config

import (
	"github.com/spf13/pflag"
)

// BindFlags registers the configuration flags on fs and returns the config
// they write into. The returned value is meant to be passed to
// [GetStructuredConfig] after fs has been parsed.
//
// Flags:
//
//	--config           JSON config file path
//	--env-file         .env file path
//	--driver           storage driver: bolt, sqlite or file
//	--dsn              storage file path
//	--log-level        log level
//	--log-file         log file path
//	--parallelism      recovery parallelism
func BindFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := &StructuredConfig{}

	fs.StringVarP(&cfg.JSONFilePath, "config", "c", "", "JSON config file path")
	fs.StringVar(&cfg.DotEnvPath, "env-file", "", ".env file path")
	fs.StringVar(&cfg.Storage.Driver, "driver", "", "Storage driver (bolt, sqlite, file)")
	fs.StringVarP(&cfg.Storage.DSN, "dsn", "d", "", "Storage file path")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Log.File, "log-file", "", "Log file path")
	fs.IntVar(&cfg.Recovery.Parallelism, "parallelism", 0, "Entries attempted in parallel during recovery")

	return cfg
}
