package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	orderapp "github.com/souq/backend/internal/application/order"
	"github.com/souq/backend/internal/infrastructure/auth"
	"github.com/souq/backend/internal/infrastructure/payment"
	"github.com/souq/backend/internal/interfaces/http/dto"
	"github.com/souq/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// PaymentHandler handles payment initiation and gateway callbacks
type PaymentHandler struct {
	BaseHandler
	paymentService  *orderapp.PaymentService
	webhookVerifier *payment.StripeWebhookVerifier
	jwtService      *auth.JWTService
	logger          *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(
	paymentService *orderapp.PaymentService,
	webhookVerifier *payment.StripeWebhookVerifier,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		paymentService:  paymentService,
		webhookVerifier: webhookVerifier,
		jwtService:      jwtService,
		logger:          logger,
	}
}

// RegisterRoutes registers payment routes. Initiation requires a buyer
// token; the webhook is called by Stripe and is authenticated by its
// signature instead.
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", middleware.JWTAuth(h.jwtService), h.Initiate)
		payments.POST("/stripe/webhook", h.StripeWebhook)
	}
}

// Initiate starts a payment attempt for one of the buyer's pending orders
func (h *PaymentHandler) Initiate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderapp.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.paymentService.Initiate(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// StripeWebhook settles orders Stripe reports as paid. Returns 200 for
// events we absorb so Stripe stops retrying, 400 for bad signatures.
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	confirmation, err := h.webhookVerifier.VerifyConfirmation(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.BadRequest(c, "Webhook verification failed")
		return
	}
	if confirmation == nil {
		// Verified but not an event we act on
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"received": true}))
		return
	}

	if err := h.paymentService.HandleGatewayConfirmation(c.Request.Context(), confirmation.OrderID); err != nil {
		// A 500 tells Stripe to retry delivery later
		h.logger.Error("Failed to settle gateway confirmation",
			zap.String("order_id", confirmation.OrderID.String()),
			zap.String("event_id", confirmation.EventID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, "Failed to process event"))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"received": true, "event_id": confirmation.EventID}))
}
