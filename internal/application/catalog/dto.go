package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/souq/backend/internal/domain/catalog"
)

// CreateShopRequest represents a request to open a shop
type CreateShopRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// ShopResponse represents a shop in API responses
type ShopResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateProductRequest represents a request to list a product
type CreateProductRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageKey    string          `json:"image_key" binding:"max=500"`
	// GenerateDescription asks the platform to write a marketing description
	// when the seller leaves Description empty.
	GenerateDescription bool `json:"generate_description"`
}

// UpdateProductRequest represents a request to update a product listing
type UpdateProductRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
	ImageKey    *string          `json:"image_key" binding:"omitempty,max=500"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	ShopID      uuid.UUID       `json:"shop_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	ImageKey    string          `json:"image_key,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SearchProductsRequest represents product search query parameters
type SearchProductsRequest struct {
	Search   string `form:"search" binding:"max=200"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ImageUploadURLRequest asks for a presigned upload URL for a product image
type ImageUploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required,max=200"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// ImageUploadURLResponse carries a presigned PUT URL and the resulting key
type ImageUploadURLResponse struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toShopResponse(shop *catalog.Shop) ShopResponse {
	return ShopResponse{
		ID:          shop.ID,
		OwnerID:     shop.OwnerID,
		Name:        shop.Name,
		Description: shop.Description,
		CreatedAt:   shop.CreatedAt,
	}
}

func toProductResponse(product *catalog.Product, imageURL string) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		ShopID:      product.ShopID,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Currency:    string(product.Currency),
		ImageKey:    product.ImageKey,
		ImageURL:    imageURL,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
