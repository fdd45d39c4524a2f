package middleware

import (
	"fmt"
	"net/http"
	"time"

	"eastside-storefront/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestLogger tags the request context with a request id and logs one line per request.
func RequestLogger(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)

		ctx := logg.WithFields(c.Request.Context(), map[string]any{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		})
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		// Handlers may have added fields (session id) to the request context.
		ctx = logg.WithFields(c.Request.Context(), map[string]any{
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if len(c.Errors) > 0 {
			logg.Error(ctx, "request.complete", c.Errors.Last())
			return
		}
		logg.Info(ctx, "request.complete")
	}
}

// Recoverer turns a handler panic into a logged 500.
func Recoverer(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				ctx := logg.WithField(c.Request.Context(), "panic", fmt.Sprint(rec))
				logg.Error(ctx, "panic.recovered", fmt.Errorf("panic: %v", rec))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
		}()
		c.Next()
	}
}
