// Package config provides centralized configuration management for the
// dashboard. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for accessing configuration values.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. A YAML file (VOLVE_CONFIG_FILE, config.yaml or configs/config.yaml)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern VOLVE_<SECTION>_<FIELD>:
//
//	VOLVE_SERVER_PORT=8080
//	VOLVE_DATASET_PATH=/data/volve_params.xlsx
//	VOLVE_DATASET_IMAGE_PATH=img/pozo.jpg
//	VOLVE_LOGGING_LEVEL=debug
//	VOLVE_DASHBOARD_PAGE_SIZE=250
//	VOLVE_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return fmt.Errorf("failed to load configuration: %w", err)
//	}
package config
