package resumes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/extract"
	"elevate-backend/internal/shared/server/middleware"
	"elevate-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes/history", middleware.RequireIdentity(), h.history)
}

func (h *Handler) upload(c *gin.Context) {
	// Multipart framing needs headroom above the file cap.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds the 10MB limit.", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds the 10MB limit.", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	resume, err := h.Svc.Upload(c.Request.Context(), middleware.IdentityFromContext(c), fileHeader.Filename, data)
	if err != nil {
		writeUploadError(c, err)
		return
	}

	c.Set("resumeId", resume.ID)
	respond.Created(c, UploadResponse{ResumeID: resume.ID, Message: "Resume uploaded successfully"})
}

func writeUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds the 10MB limit.", nil)
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, "validation_error", uploadMessage(err), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload resume", nil)
	}
}

func uploadMessage(err error) string {
	switch {
	case errors.Is(err, extract.ErrEmpty):
		return "Cannot parse an empty file."
	case errors.Is(err, extract.ErrNotPDF):
		return "Only PDF files are supported."
	case errors.Is(err, extract.ErrEncrypted):
		return "Encrypted PDFs are not supported."
	case errors.Is(err, extract.ErrUnreadable):
		return "The PDF could not be read."
	default:
		return "The uploaded file is not a valid resume."
	}
}

func (h *Handler) history(c *gin.Context) {
	items, err := h.Svc.History(c.Request.Context(), middleware.IdentityFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load history", nil)
		return
	}
	respond.OK(c, items)
}
