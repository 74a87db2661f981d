/*
Package monitoring provides metrics collection for the content server.

# Overview

This package implements Prometheus-based metrics collection, tracking HTTP
requests, media streaming outcomes and assessment submissions.

# Features

- HTTP request metrics (latency, throughput, size) labelled by route template
- Media metrics (full/partial/416 responses, bytes streamed, aborted streams)
- Submission counts per result category
- Go runtime, process and uptime metrics

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

Each Metrics value owns a private registry, so tests may build as many
servers as they like.
*/
package monitoring
