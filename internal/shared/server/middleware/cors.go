package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Credentials": "true",
	"Access-Control-Allow-Methods":     "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers":     "Authorization, Content-Type, X-Request-Id",
	"Access-Control-Expose-Headers":    "Content-Disposition, Retry-After, X-Request-Id",
	"Access-Control-Max-Age":           "600",
}

// CORS reflects allowlisted origins. A "*" entry allows any origin; credentials
// still work because the concrete origin is echoed back.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch o {
		case "":
		case "*":
			allowAll = true
		default:
			allowed[o] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Writer.Header().Add("Vary", "Origin")
			if allowAll || allowed[origin] {
				h := c.Writer.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				for k, v := range corsHeaders {
					h.Set(k, v)
				}
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
