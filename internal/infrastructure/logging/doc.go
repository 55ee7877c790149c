// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output at debug level
//
// The schema context logs schema changes at Info; the converter logs every
// resolution and every failed resolution at Debug.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	defer logger.Sync()
//	ctx := schema.NewContext(logger.Logger)
package logging
