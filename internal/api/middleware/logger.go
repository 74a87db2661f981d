package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kuldeep2thakur/depression/internal/infrastructure/logging"
)

// RequestLogger writes one structured line per request.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		completed := false

		defer func() {
			logRequest(logger, c, path, start, completed)
		}()

		c.Next()
		completed = true
	}
}

func logRequest(logger *logging.Logger, c *gin.Context, path string, start time.Time, completed bool) {
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", path),
		zap.Int("status", c.Writer.Status()),
		zap.Int("bytes", c.Writer.Size()),
		zap.Duration("latency", time.Since(start)),
		zap.String("client_ip", c.ClientIP()),
		zap.String("request_id", GetRequestID(c)),
	}
	if rng := c.GetHeader("Range"); rng != "" {
		fields = append(fields, zap.String("range", rng))
	}
	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("errors", c.Errors.String()))
	}
	if !completed {
		fields = append(fields, zap.Bool("aborted", true))
		logger.Error("Request aborted", fields...)
		return
	}

	switch status := c.Writer.Status(); {
	case status >= 500:
		logger.Error("Request failed", fields...)
	case status >= 400:
		logger.Warn("Request rejected", fields...)
	default:
		logger.Info("Request served", fields...)
	}
}
