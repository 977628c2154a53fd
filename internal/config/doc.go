// Package config provides centralized configuration management for the
// FinMark tools. It loads configuration from multiple sources, validates it,
// and exposes a type-safe API for the paths and forecasting knobs the
// binaries need.
//
// # Configuration Sources
//
// Configuration is loaded in order of precedence:
//
//	1. Configuration file (YAML, highest priority)
//	2. Environment variables
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern FINMARK_* for namespacing:
//
//	FINMARK_LOGGING_LEVEL=debug
//	FINMARK_PATHS_OUTPUT_PATH=/var/finmark/output
//	FINMARK_FORECASTING_PREDICTION_PERIODS=60
//
// # Usage
//
// Load configuration at tool startup:
//
//	cfg, err := config.Load("config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Derived artifact paths come from the Config methods (ForecastCSVPath,
// ForecastChartPath, ComponentsChartPath, ProcessedDataFile) so the file
// names stay consistent across tools.
package config
