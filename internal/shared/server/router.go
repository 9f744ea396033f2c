package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/services/health"
	"elevate-backend/internal/shared/config"
	"elevate-backend/internal/shared/metrics"
	"elevate-backend/internal/shared/server/middleware"
	"elevate-backend/internal/shared/server/respond"
)

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps wires handlers into the router.
type RouterDeps struct {
	Config   config.Config
	Verifier middleware.TokenVerifier
	Health   *health.Service
	Limiter  *middleware.RateLimiter
	Routes   []RouteRegistrar
}

var defaultRateRules = map[string]middleware.RateLimitRule{
	middleware.GroupDefault: {Rate: 5, Burst: 30},
	middleware.GroupAnalyze: {Rate: 0.2, Burst: 5},
	middleware.GroupUpload:  {Rate: 0.5, Burst: 10},
}

var analyzeRoutes = map[string]bool{
	"/api/v1/resumes/:id/analyze":      true,
	"/api/v1/resumes/:id/cover-letter": true,
	"/api/v1/resumes/enhance":          true,
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Verifier),
	)
	if deps.Config.RateLimitEnabled {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules:    defaultRateRules,
			GroupFor: rateGroup,
			Limiter:  deps.Limiter,
		}))
	}

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", healthHandler(deps.Health))
	for _, reg := range deps.Routes {
		if reg != nil {
			reg.RegisterRoutes(api)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Route not found", nil)
	})

	return r
}

func healthHandler(svc *health.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc == nil {
			respond.JSON(c, http.StatusOK, gin.H{"status": "ok"})
			return
		}
		st, ok := svc.Check(c.Request.Context())
		if !ok {
			respond.JSON(c, http.StatusServiceUnavailable, st)
			return
		}
		respond.JSON(c, http.StatusOK, st)
	}
}

func rateGroup(c *gin.Context) string {
	path := c.FullPath()
	switch {
	case analyzeRoutes[path]:
		return middleware.GroupAnalyze
	case path == "/api/v1/resumes" && c.Request.Method == http.MethodPost:
		return middleware.GroupUpload
	default:
		return middleware.GroupDefault
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
