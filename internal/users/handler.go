package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/shared/server/middleware"
	"elevate-backend/internal/shared/server/respond"
	"elevate-backend/internal/shared/telemetry"
)

// ResumeCounter counts resumes owned by a user.
type ResumeCounter interface {
	CountByUser(ctx context.Context, userID string) (int, error)
}

type Handler struct {
	Svc     *Service
	Resumes ResumeCounter
}

func NewHandler(svc *Service, resumes ResumeCounter) *Handler {
	return &Handler{Svc: svc, Resumes: resumes}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user/me", middleware.RequireIdentity(), h.me)
}

func (h *Handler) me(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	id := middleware.IdentityFromContext(c)
	ctx := c.Request.Context()
	user, err := h.Svc.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}

	count := 0
	if h.Resumes != nil {
		n, err := h.Resumes.CountByUser(ctx, user.ID)
		if err != nil {
			telemetry.Warn("user.resume_count_failed", map[string]any{"user_id": user.ID, "err": err})
		} else {
			count = n
		}
	}

	respond.OK(c, MeResponse{
		Name:        user.Name,
		Email:       user.Email,
		Picture:     user.PictureURL,
		Provider:    user.Provider,
		IsPro:       user.IsPro,
		ScansUsed:   user.ScansUsed,
		ResumeCount: count,
	})
}
