package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// unmatchedRoute labels requests that hit no route, keeping label cardinality bounded.
const unmatchedRoute = "unmatched"

// Middleware creates a Gin middleware for metrics collection.
// Recording is deferred so aborted handlers (panic(http.ErrAbortHandler))
// are still counted.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			route := c.FullPath()
			if route == "" {
				route = unmatchedRoute
			}

			respSize := int64(c.Writer.Size())
			if respSize < 0 {
				respSize = 0
			}

			metrics.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start), respSize)
		}()

		// Process request
		c.Next()
	}
}
