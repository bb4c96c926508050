package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/souq/backend/internal/application/order"
	"github.com/souq/backend/internal/infrastructure/auth"
	"github.com/souq/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles buyer order requests
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
	jwtService   *auth.JWTService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService, jwtService *auth.JWTService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		jwtService:   jwtService,
	}
}

// RegisterRoutes registers order routes; all require authentication
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", middleware.JWTAuth(h.jwtService))
	{
		orders.POST("", h.Create)
		orders.GET("", h.ListMine)
		orders.GET("/:id", h.GetByID)
		orders.POST("/:id/ship", middleware.RequireAdmin(), h.MarkShipped)
	}
}

// Create places a new order for the authenticated buyer
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.orderService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListMine lists the authenticated buyer's own orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req struct {
		Page     int `form:"page" binding:"omitempty,min=1"`
		PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	orders, err := h.orderService.ListByBuyer(c.Request.Context(), userID, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetByID returns an order. Buyers can only see their own orders;
// admins can see any.
func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.orderService.GetByID(c.Request.Context(), userID, middleware.IsAdmin(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// MarkShipped records that a paid order has been handed to delivery
func (h *OrderHandler) MarkShipped(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.orderService.MarkShipped(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
