package payment

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shdeco/internal/pkg/response"
)

const maxWebhookBody = 1 << 20

type Handler struct {
	service  *Service
	verifier *Verifier
	log      *logrus.Logger
}

func NewHandler(service *Service, verifier *Verifier, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{service: service, verifier: verifier, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/create-checkout-session", h.CreateCheckoutSession)
	rg.POST("/webhook", h.Webhook)
	rg.GET("/payments", h.GetPayments)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/anomalies", h.ListAnomalies)
}

// CreateCheckoutSession godoc
// @Summary      Create a hosted checkout session
// @Description  Returns the provider redirect URL for paying a booking
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        body body CreateCheckoutSessionRequest true "Checkout payload"
// @Success      200 {object} CreateCheckoutSessionResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /create-checkout-session [post]
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	url, err := h.service.StartCheckout(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount or booking"})
		case errors.Is(err, ErrProviderUnavailable):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout session failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout session failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetPayments serves the dashboard's payment history: all payments for
// an email, or the payments recorded against one booking.
func (h *Handler) GetPayments(c *gin.Context) {
	if email := c.Query("email"); email != "" {
		payments, err := h.service.PaymentsByEmail(c.Request.Context(), email)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load payments")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"payments": payments})
		return
	}

	if rawID := c.Query("bookingId"); rawID != "" {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking ID")
			return
		}
		payments, err := h.service.PaymentsByBooking(c.Request.Context(), id)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load payments")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"payments": payments})
		return
	}

	response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing query params")
}

// ListAnomalies godoc
// @Summary      List reconciliation anomalies
// @Description  Events that could not be fully reconciled, newest first
// @Tags         Payments
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /admin/anomalies [get]
func (h *Handler) ListAnomalies(c *gin.Context) {
	anomalies, err := h.service.Anomalies(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load anomalies")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"anomalies": anomalies})
}

// Webhook godoc
// @Summary      Payment provider webhook
// @Description  Verifies the event signature and reconciles the booking
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature header string true "Signature header"
// @Success      200 {object} WebhookAck
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /webhook [post]
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read body"})
		return
	}

	ev, err := h.verifier.Verify(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.log.WithError(err).Warn("webhook verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook Error: " + err.Error()})
		return
	}

	// Unconsumed event types are acknowledged so the provider stops
	// retrying them.
	if ev.Type != EventCheckoutCompleted {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	ce, err := ParseCheckoutCompleted(ev)
	if err != nil {
		h.log.WithError(err).Warn("webhook payload rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook Error: " + err.Error()})
		return
	}

	// The payment already happened on the provider side, so
	// reconciliation must finish even if the delivery connection drops
	// mid-request.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 30*time.Second)
	defer cancel()

	if err := h.service.Reconcile(ctx, ce); err != nil {
		// Pre-claim transient failure: a 5xx makes the provider retry
		// and the idempotency guard deduplicates once storage recovers.
		h.log.WithError(err).WithField("event_id", ce.EventID).Error("webhook reconciliation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "temporary failure"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
