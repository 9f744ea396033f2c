package billing

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/shared/server/middleware"
	"elevate-backend/internal/shared/server/respond"
)

const maxWebhookBytes = 64 << 10

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/billing/checkout-session", middleware.RequireIdentity(), h.checkout)
	rg.POST("/billing/webhook", h.webhook)
}

func (h *Handler) checkout(c *gin.Context) {
	resp, err := h.Svc.Checkout(c.Request.Context(), middleware.IdentityFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "billing_unavailable", "billing is not configured", nil)
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadGateway, "checkout_failed", "failed to create checkout session", nil)
		}
		return
	}
	respond.OK(c, resp)
}

func (h *Handler) webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read body", nil)
		return
	}

	err = h.Svc.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, ErrUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "billing_unavailable", "billing is not configured", nil)
		case errors.Is(err, ErrBadSignature):
			respond.Error(c, http.StatusBadRequest, "invalid_signature", "webhook signature verification failed", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process webhook", nil)
		}
		return
	}
	respond.OK(c, WebhookResponse{Received: true})
}
