package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/souq/backend/internal/domain/catalog"
	"github.com/souq/backend/internal/domain/identity"
	"github.com/souq/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ShopService handles shop management
type ShopService struct {
	shopRepo catalog.ShopRepository
	userRepo identity.Repository
	logger   *zap.Logger
}

// NewShopService creates a new ShopService
func NewShopService(shopRepo catalog.ShopRepository, userRepo identity.Repository, logger *zap.Logger) *ShopService {
	return &ShopService{
		shopRepo: shopRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create opens a shop for a seller. A seller owns at most one shop.
func (s *ShopService) Create(ctx context.Context, ownerID uuid.UUID, req CreateShopRequest) (*ShopResponse, error) {
	user, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !user.IsSeller {
		return nil, shared.NewDomainError("FORBIDDEN", "Only sellers can open a shop")
	}

	exists, err := s.shopRepo.ExistsByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Seller already owns a shop")
	}

	shop, err := catalog.NewShop(ownerID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.shopRepo.Save(ctx, shop); err != nil {
		return nil, err
	}

	s.logger.Info("Shop created",
		zap.String("shop_id", shop.ID.String()),
		zap.String("owner_id", ownerID.String()))

	resp := toShopResponse(shop)
	return &resp, nil
}

// GetByOwner returns the shop owned by the given seller
func (s *ShopService) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*ShopResponse, error) {
	shop, err := s.shopRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	resp := toShopResponse(shop)
	return &resp, nil
}
