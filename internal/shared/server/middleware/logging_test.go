package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)
	prev := telemetry.L()
	telemetry.Use(zap.New(core))
	defer telemetry.Use(prev)

	verifier := stubVerifier{tokens: map[string]auth.Identity{"tok": {UserID: "user-1"}}}
	router := gin.New()
	router.Use(RequestID(), Auth(verifier), Logging())
	router.GET("/test", func(c *gin.Context) {
		c.Set("resumeId", "resume-1")
		c.Set("analysisId", "analysis-1")
		c.Set("degradedReason", "timeout")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer tok")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	entries := logs.FilterMessage("request.complete").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request.complete entry, got %d", len(entries))
	}
	payload := entries[0].ContextMap()

	required := []string{"request_id", "user_id", "resume_id", "analysis_id", "duration_ms", "status", "degraded_reason"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["user_id"] != "user-1" {
		t.Fatalf("unexpected user_id: %v", payload["user_id"])
	}
	if payload["resume_id"] != "resume-1" {
		t.Fatalf("unexpected resume_id: %v", payload["resume_id"])
	}
	if payload["degraded_reason"] != "timeout" {
		t.Fatalf("unexpected degraded_reason: %v", payload["degraded_reason"])
	}
}
