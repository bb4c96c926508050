package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/souq/backend/internal/application/catalog"
	"github.com/souq/backend/internal/infrastructure/auth"
	"github.com/souq/backend/internal/interfaces/http/middleware"
)

// ShopHandler handles seller shop requests
type ShopHandler struct {
	BaseHandler
	shopService *catalogapp.ShopService
	jwtService  *auth.JWTService
}

// NewShopHandler creates a new ShopHandler
func NewShopHandler(shopService *catalogapp.ShopService, jwtService *auth.JWTService) *ShopHandler {
	return &ShopHandler{
		shopService: shopService,
		jwtService:  jwtService,
	}
}

// RegisterRoutes registers shop routes; all require a seller token
func (h *ShopHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shops := rg.Group("/shops", middleware.JWTAuth(h.jwtService), middleware.RequireSeller())
	{
		shops.POST("", h.Create)
		shops.GET("/mine", h.GetMine)
	}
}

// Create opens the seller's shop. A seller can have at most one.
func (h *ShopHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	shop, err := h.shopService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, shop)
}

// GetMine returns the seller's own shop
func (h *ShopHandler) GetMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	shop, err := h.shopService.GetByOwner(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shop)
}
