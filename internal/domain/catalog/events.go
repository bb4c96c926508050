package catalog

import (
	"github.com/souq/backend/internal/domain/shared"
)

// Aggregate types for catalog events
const (
	AggregateTypeShop    = "shop"
	AggregateTypeProduct = "product"
)

// Event types
const (
	EventTypeShopCreated    = "catalog.shop.created"
	EventTypeProductCreated = "catalog.product.created"
	EventTypeProductUpdated = "catalog.product.updated"
)

// ShopCreatedEvent is published when a seller opens a shop
type ShopCreatedEvent struct {
	shared.BaseDomainEvent
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}

// NewShopCreatedEvent creates a new shop created event
func NewShopCreatedEvent(shop *Shop) *ShopCreatedEvent {
	return &ShopCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShopCreated, AggregateTypeShop, shop.ID),
		OwnerID:         shop.OwnerID.String(),
		Name:            shop.Name,
	}
}

// ProductCreatedEvent is published when a product is listed
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ShopID string `json:"shop_id"`
	Title  string `json:"title"`
	Price  string `json:"price"`
}

// NewProductCreatedEvent creates a new product created event
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ShopID:          product.ShopID.String(),
		Title:           product.Title,
		Price:           product.Price.StringFixed(2),
	}
}

// ProductUpdatedEvent is published when a product listing changes
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
}

// NewProductUpdatedEvent creates a new product updated event
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		Title:           product.Title,
	}
}
