// Package main is the entry point for the Mind Check content server.
//
// The server hands out the site's static pages, streams the nature video
// with single-range support, and scores submitted self-assessment quizzes.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for local use
//
// Usage:
//
//	# Serve on 127.0.0.1:3000 with the embedded pages
//	./server
//
//	# Development mode (colored logs, debug level)
//	./server --dev --port 8080 --media ./naturevideo.mp4
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
