package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		resumeID, _ := c.Get("resumeId")
		analysisID, _ := c.Get("analysisId")
		degraded, _ := c.Get("degradedReason")

		telemetry.Info("request.complete", map[string]any{
			"request_id":      RequestIDFromContext(c),
			"method":          c.Request.Method,
			"path":            c.Request.URL.Path,
			"status":          c.Writer.Status(),
			"duration_ms":     float64(latency.Microseconds()) / 1000.0,
			"user_id":         UserIDFromContext(c),
			"resume_id":       resumeID,
			"analysis_id":     analysisID,
			"degraded_reason": degraded,
			"client_ip":       c.ClientIP(),
			"user_agent":      c.Request.UserAgent(),
		})
	}
}
