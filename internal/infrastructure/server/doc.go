// Package server assembles the content server: it loads pages, the video
// descriptor and the scoring table, installs middleware and routes on a gin
// engine, and runs it with graceful shutdown.
package server
