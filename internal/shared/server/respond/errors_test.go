package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/x", func(c *gin.Context) {
		c.Set("requestId", "req-1")
		Error(c, http.StatusBadRequest, "validation_error", "Bullet point is required", map[string]string{"field": "bulletPoint"})
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body Envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "validation_error" || body.Error.Message != "Bullet point is required" {
		t.Fatalf("unexpected body %+v", body)
	}
	if body.Error.RequestID != "req-1" {
		t.Fatalf("expected request id in envelope, got %q", body.Error.RequestID)
	}
}

func TestErrorOmitsEmptyDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/x", func(c *gin.Context) {
		Error(c, http.StatusNotFound, "not_found", "Resume not found", nil)
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	var raw map[string]map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := raw["error"]["details"]; ok {
		t.Fatalf("expected details to be omitted, got %v", raw)
	}
	if _, ok := raw["error"]["requestId"]; ok {
		t.Fatalf("expected requestId to be omitted without middleware, got %v", raw)
	}
}
