package writing

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/shared/server/middleware"
	"elevate-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/enhance", h.enhance)
	rg.POST("/resumes/:id/cover-letter", h.coverLetter)
}

func (h *Handler) enhance(c *gin.Context) {
	var body EnhanceRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req, err := NewEnhanceRequest(body.BulletPoint, body.TargetJob)
	if err != nil {
		msg := err.Error()
		if req.BulletPoint == "" {
			msg = "Bullet point is required"
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", msg, nil)
		return
	}

	resp, err := h.Svc.Enhance(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.OK(c, resp)
}

func (h *Handler) coverLetter(c *gin.Context) {
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	var body CoverLetterRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req, err := NewCoverLetterRequest(body.JobDescription)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	resp, err := h.Svc.CoverLetter(c.Request.Context(), middleware.IdentityFromContext(c), resumeID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate cover letter", nil)
		}
		return
	}
	respond.OK(c, resp)
}
