package analyses

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/shared/server/middleware"
	"elevate-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/:id/analyze", h.analyze)
	rg.GET("/resumes/:id/analysis", h.latest)
}

func (h *Handler) analyze(c *gin.Context) {
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	var body AnalyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req, err := NewAnalyzeRequest(body.JobDescription)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), middleware.IdentityFromContext(c), resumeID, req)
	if err != nil {
		h.fail(c, err, "failed to analyze resume")
		return
	}

	c.Set("analysisId", analysis.ID)
	if analysis.DegradedReason != "" {
		c.Set("degradedReason", string(analysis.DegradedReason))
	}
	respond.OK(c, toResponse(analysis))
}

func (h *Handler) latest(c *gin.Context) {
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	analysis, err := h.Svc.Latest(c.Request.Context(), middleware.IdentityFromContext(c), resumeID)
	if err != nil {
		h.fail(c, err, "failed to fetch analysis")
		return
	}
	c.Set("analysisId", analysis.ID)
	respond.OK(c, toResponse(analysis))
}

func (h *Handler) fail(c *gin.Context, err error, internalMessage string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "analysis or resume not found", nil)
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", internalMessage, nil)
	}
}
