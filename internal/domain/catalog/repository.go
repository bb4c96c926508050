package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/souq/backend/internal/domain/shared"
)

// ShopRepository provides access to shops
type ShopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Shop, error)
	ExistsByOwnerID(ctx context.Context, ownerID uuid.UUID) (bool, error)
	Save(ctx context.Context, shop *Shop) error
}

// ProductRepository provides access to products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByShopID(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]Product, int64, error)
	// Search matches the filter's search term against product titles,
	// case-insensitively. An empty term returns all products.
	Search(ctx context.Context, filter shared.Filter) ([]Product, int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
