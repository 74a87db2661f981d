// Package config provides 12-factor configuration management for the content server.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: bind address and timeouts
//   - Content: page override directory and gzip variants
//   - Media: video asset path, content type and copy increment
//   - Scoring: form body limit and optional threshold table file
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - CORS, Ops: optional middleware and operational endpoints
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	fmt.Printf("Server running on %s\n", cfg.Address())
//
// Environment Variables:
//   - HOST, PORT, READ_TIMEOUT, WRITE_TIMEOUT, SHUTDOWN_TIMEOUT
//   - PAGES_DIR, COMPRESS_PAGES
//   - MEDIA_PATH, MEDIA_CONTENT_TYPE, MEDIA_CHUNK_SIZE
//   - SCORING_MAX_BODY, SCORING_TABLE
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CORS_ENABLED, METRICS_ENABLED, HEALTH_ENABLED
package config
