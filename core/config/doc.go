// Package config provides configuration management for packetgen.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live in `default:` struct tags next to each
// field and are registered by walking the structs with reflection.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Build: the game version substituted into {version} path templates
//   - Packets: packet id table, exclusions, output files and ordering
//   - Remap: translation file, schema, overrides and substitution mode
//   - Storage: S3/MinIO credentials for publishing generated artifacts
//   - Database: optional override store connection
//   - Log: logging level and format
//
// Environment variables map onto nested keys by replacing dots with
// underscores, so BUILD_VERSION sets build.version and REMAP_STORE sets
// remap.store.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts, err := cfg.Packets.Resolve(cfg.Build.Version)
package config
