package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/souq/backend/internal/application/order"
	"github.com/souq/backend/internal/infrastructure/auth"
	"github.com/souq/backend/internal/interfaces/http/middleware"
)

// AdminHandler handles the back-office payment reconciliation endpoints
type AdminHandler struct {
	BaseHandler
	reconciliationService *orderapp.ReconciliationService
	jwtService            *auth.JWTService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(reconciliationService *orderapp.ReconciliationService, jwtService *auth.JWTService) *AdminHandler {
	return &AdminHandler{
		reconciliationService: reconciliationService,
		jwtService:            jwtService,
	}
}

// RegisterRoutes registers admin routes; all require an admin token
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", middleware.JWTAuth(h.jwtService), middleware.RequireAdmin())
	{
		admin.GET("/payments", h.ListLocalPayments)
		admin.POST("/payments/:id/approve", h.ApprovePayment)
	}
}

// ListLocalPayments lists submitted Bankily payments, optionally filtered
// by verification state
func (h *AdminHandler) ListLocalPayments(c *gin.Context) {
	var req orderapp.ListLocalPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	payments, total, err := h.reconciliationService.ListLocalPayments(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, total, req.Page, req.PageSize)
}

// ApprovePayment confirms a Bankily payment after the admin has checked the
// transfer, marking the order paid and recording the platform commission
func (h *AdminHandler) ApprovePayment(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	paymentID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.reconciliationService.Approve(c.Request.Context(), adminID, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
