package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/shared/telemetry"
)

// Problem is the error object clients switch on. Code is stable, Message is for humans.
type Problem struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Envelope wraps every error body as {"error": {...}}.
type Envelope struct {
	Error Problem `json:"error"`
}

// Error aborts the request with an error envelope. 5xx logs at error, everything else at warn.
func Error(c *gin.Context, status int, code, message string, details any) {
	p := Problem{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: c.GetString("requestId"),
	}
	logProblem(c, status, p)
	c.AbortWithStatusJSON(status, Envelope{Error: p})
}

func logProblem(c *gin.Context, status int, p Problem) {
	fields := map[string]any{
		"status":     status,
		"code":       p.Code,
		"message":    p.Message,
		"route":      c.FullPath(),
		"method":     c.Request.Method,
		"request_id": p.RequestID,
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
		return
	}
	telemetry.Warn("http.error", fields)
}
