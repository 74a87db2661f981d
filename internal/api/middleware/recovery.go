package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kuldeep2thakur/depression/internal/infrastructure/logging"
)

// Recovery turns panics into a generic 500 page.
//
// http.ErrAbortHandler is re-raised untouched: handlers use it to drop a
// connection whose headers are already on the wire, and net/http only
// closes the connection silently if it sees that exact panic.
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			logger.Error("Recovered from panic",
				zap.Any("panic", rec),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", GetRequestID(c)),
				zap.Stack("stack"),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte("<h1>500 Internal Server Error</h1>"))
			c.Abort()
		}()

		c.Next()
	}
}
