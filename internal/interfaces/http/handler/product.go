package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/souq/backend/internal/application/catalog"
	"github.com/souq/backend/internal/infrastructure/auth"
	"github.com/souq/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product listing requests
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	jwtService     *auth.JWTService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, jwtService *auth.JWTService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		jwtService:     jwtService,
	}
}

// RegisterRoutes registers product routes. Browsing is public; listing
// management requires a seller token.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.Search)
		products.GET("/:id", h.GetByID)

		sellerOnly := products.Group("", middleware.JWTAuth(h.jwtService), middleware.RequireSeller())
		{
			sellerOnly.POST("", h.Create)
			sellerOnly.PUT("/:id", h.Update)
			sellerOnly.POST("/image-upload-url", h.ImageUploadURL)
		}
	}
}

// Search lists products matching an optional title search term
func (h *ProductHandler) Search(c *gin.Context) {
	var req catalogapp.SearchProductsRequest
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

	products, total, err := h.productService.Search(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, req.Page, req.PageSize)
}

// GetByID returns a single product listing
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Create lists a new product in the seller's shop
func (h *ProductHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update modifies one of the seller's own listings
func (h *ProductHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// ImageUploadURL hands the seller a presigned URL to upload a product image
func (h *ProductHandler) ImageUploadURL(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.ImageUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.productService.ImageUploadURL(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
