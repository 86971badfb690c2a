// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and console or JSON output.
//
// # Run Correlation
//
// Each CLI invocation is tagged with a run id (a random UUID). WithRunID attaches
// it to the logger so every entry produced by one generation run can be
// correlated, including entries from the storage and database layers.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log, logger.NewRunID())
//	log.Info("Generation started")
package logger
