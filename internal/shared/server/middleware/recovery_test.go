package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/shared/metrics"
)

func TestRecoveryReturns500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"code":"internal_error"`) {
		t.Fatalf("expected internal error code, got %s", resp.Body.String())
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
	if !strings.Contains(metrics.Render(), "http_panics_total") {
		t.Fatalf("expected panic counter to be exported")
	}
}

func TestRequestIDKeepsWellFormedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	cases := map[string]bool{
		"abc-123_X.y":           true,
		"has space":             false,
		"new\nline":             false,
		strings.Repeat("a", 65): false,
	}
	for incoming, kept := range cases {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Request-Id", incoming)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		got := resp.Body.String()
		if kept && got != incoming {
			t.Fatalf("expected %q to be kept, got %q", incoming, got)
		}
		if !kept && (got == incoming || got == "") {
			t.Fatalf("expected %q to be replaced, got %q", incoming, got)
		}
		if resp.Header().Get("X-Request-Id") != got {
			t.Fatalf("header and context disagree: %q vs %q", resp.Header().Get("X-Request-Id"), got)
		}
	}
}
