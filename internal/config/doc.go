// Package config provides configuration loading, merging, and validation
// facilities for the vault.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. JSON config file
//  3. Environment variables (a .env file is loaded first when present)
//  4. Command-line flags
//
// The main entry point is [GetStructuredConfig]; [BindFlags] registers the
// command-line flags on a cobra/pflag flag set.
package config
