package export

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/shared/server/middleware"
	"elevate-backend/internal/shared/server/respond"
)

const pdfDisposition = `attachment; filename="ElevateAI_Resume.pdf"`

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes/:id/preview-html", h.preview)
	rg.POST("/resumes/:id/export-pdf", h.exportPDF)
}

func (h *Handler) preview(c *gin.Context) {
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	var opts Options
	if err := c.ShouldBindQuery(&opts); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid query", nil)
		return
	}
	html, err := h.Svc.Preview(c.Request.Context(), middleware.IdentityFromContext(c), resumeID, opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) exportPDF(c *gin.Context) {
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	var opts Options
	if err := c.ShouldBindJSON(&opts); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	pdf, err := h.Svc.ExportPDF(c.Request.Context(), middleware.IdentityFromContext(c), resumeID, opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", pdfDisposition)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume or analysis not found", nil)
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrRender):
		respond.Error(c, http.StatusInternalServerError, "export_failed", "failed to render PDF", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export resume", nil)
	}
}
