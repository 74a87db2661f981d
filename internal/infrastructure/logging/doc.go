// Package logging provides structured logging using uber/zap.
//
// This package offers production-ready logging with two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Log Levels:
//   - Debug: per-request stream aborts and client disconnects
//   - Info: startup, shutdown and one line per request
//   - Warn: recoverable problems (missing media, content type mismatch)
//   - Error: failed streams and recovered panics
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Server starting", zap.String("addr", "127.0.0.1:3000"))
//	logger.Error("Stream failed", zap.Error(err))
package logging
