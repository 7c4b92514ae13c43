// Package config provides configuration management for the Bucket Manager.
//
// It utilizes Viper for loading configuration from an optional config.yaml,
// a .env file (via godotenv) and environment variables. Defaults are declared
// next to each field with a `default` struct tag.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Storage: MinIO endpoint, credentials, TLS flag and default bucket
//   - Log: logging level and format
//   - Database: optional MySQL transfer log
//
// Nested keys map to environment variables by replacing dots with underscores,
// so storage.access_key is read from STORAGE_ACCESS_KEY.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	reg, err := storage.Register(cfg.Storage)
package config
