// Package middleware provides the Gin middleware stack of the content server.
//
// Middleware stack includes:
//   - Recovery: Panic recovery with a generic error page
//   - RequestID: ULID request identifiers echoed as X-Request-ID
//   - RequestLogger: one zap line per request
//   - CORS: Cross-origin resource sharing, exposing range headers
//   - RateLimit: Per-IP token bucket rate limiting
//
// Rate Limiting:
//   - Per-IP tracking with idle eviction
//   - Token bucket algorithm (golang.org/x/time/rate)
//   - Global rate limiting option
//
// Example Usage:
//
//	router.Use(middleware.Recovery(logger), middleware.RequestID())
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
