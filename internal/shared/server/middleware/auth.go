package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/server/respond"
)

const identityKey = "identity"

// TokenVerifier turns a bearer token into a verified identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Auth verifies bearer tokens and stores the identity in context.
// Requests without an Authorization header continue as anonymous.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/auth/google/") || path == "/api/v1/billing/webhook" {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Set(identityKey, auth.Identity{})
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" || verifier == nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		id, err := verifier.Verify(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(identityKey, id)
		c.Set("userId", id.UserID)
		c.Next()
	}
}

// RequireIdentity rejects anonymous callers.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFromContext(c).Anonymous() {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "sign in required", nil)
			return
		}
		c.Next()
	}
}

// IdentityFromContext fetches the identity set by the auth middleware.
// It returns the anonymous identity when none was set.
func IdentityFromContext(c *gin.Context) auth.Identity {
	if c == nil {
		return auth.Identity{}
	}
	val, _ := c.Get(identityKey)
	if id, ok := val.(auth.Identity); ok {
		return id
	}
	return auth.Identity{}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	return IdentityFromContext(c).UserID
}
