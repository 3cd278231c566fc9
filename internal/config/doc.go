// Package config provides centralized configuration management for the retail
// analytics pipeline. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for accessing configuration values
// throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern RETAIL_* for namespacing:
//
//	RETAIL_INPUT_CSV_PATH=data/superstore.csv
//	RETAIL_OUTPUT_DIR=output
//	RETAIL_LOGGING_LEVEL=info
//
// # Output Layout
//
// The Paths type derives every per-run artifact location from the configured
// output directory. No package-level mutable state is involved: callers pass
// a Paths value into the stages that write files.
package config
