// Package config provides configuration management for the freight audit
// service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with defaults declared as struct tags on the partial
// config structs.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: billing database (MySQL) connection details
//   - Storage: S3/MinIO credentials and report archive bucket
//   - Log: logging level and format
//   - Audit: reconciliation tolerances, severity thresholds, batch size
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engineCfg, err := cfg.Audit.ToConfig()
package config
