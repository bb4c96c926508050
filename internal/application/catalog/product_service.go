package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/souq/backend/internal/domain/catalog"
	"github.com/souq/backend/internal/domain/shared"
	"github.com/souq/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// DescriptionGenerator writes marketing copy for a product listing
type DescriptionGenerator interface {
	GenerateDescription(ctx context.Context, title string, price valueobject.Money) (string, error)
}

// ObjectStorage hands out presigned URLs for product images
type ObjectStorage interface {
	PresignPut(ctx context.Context, key, contentType string) (string, time.Time, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// ProductService handles product listing operations
type ProductService struct {
	productRepo catalog.ProductRepository
	shopRepo    catalog.ShopRepository
	descGen     DescriptionGenerator
	storage     ObjectStorage
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	shopRepo catalog.ShopRepository,
	descGen DescriptionGenerator,
	storage ObjectStorage,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		shopRepo:    shopRepo,
		descGen:     descGen,
		storage:     storage,
		logger:      logger,
	}
}

// Create lists a new product in the seller's shop. When the seller asks for a
// generated description, a failure of the generator fails the whole request
// rather than silently listing the product without copy.
func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	shop, err := s.shopRepo.FindByOwnerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	price := valueobject.NewMoneyMRU(req.Price)

	description := req.Description
	if description == "" && req.GenerateDescription {
		generated, err := s.descGen.GenerateDescription(ctx, req.Title, price)
		if err != nil {
			s.logger.Error("Description generation failed",
				zap.String("title", req.Title),
				zap.Error(err))
			return nil, shared.ErrExternalService
		}
		description = generated
	}

	product, err := catalog.NewProduct(shop.ID, req.Title, description, price)
	if err != nil {
		return nil, err
	}

	if req.ImageKey != "" {
		if err := product.SetImageKey(req.ImageKey); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product listed",
		zap.String("product_id", product.ID.String()),
		zap.String("shop_id", shop.ID.String()),
		zap.String("title", product.Title))

	resp := toProductResponse(product, s.imageURL(ctx, product))
	return &resp, nil
}

// GetByID returns a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toProductResponse(product, s.imageURL(ctx, product))
	return &resp, nil
}

// Search returns products matching the query, newest first
func (s *ProductService) Search(ctx context.Context, req SearchProductsRequest) ([]ProductResponse, int64, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = strings.TrimSpace(req.Search)

	products, total, err := s.productRepo.Search(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = toProductResponse(&products[i], s.imageURL(ctx, &products[i]))
	}
	return responses, total, nil
}

// Update modifies a product listing owned by the seller
func (s *ProductService) Update(ctx context.Context, sellerID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	shop, err := s.shopRepo.FindByOwnerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if product.ShopID != shop.ID {
		return nil, shared.ErrForbidden
	}

	title := product.Title
	if req.Title != nil {
		title = *req.Title
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(title, description); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.SetPrice(valueobject.NewMoneyMRU(*req.Price)); err != nil {
			return nil, err
		}
	}
	if req.ImageKey != nil {
		if err := product.SetImageKey(*req.ImageKey); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := toProductResponse(product, s.imageURL(ctx, product))
	return &resp, nil
}

// ImageUploadURL hands the seller a presigned PUT URL for a product image
func (s *ProductService) ImageUploadURL(ctx context.Context, sellerID uuid.UUID, req ImageUploadURLRequest) (*ImageUploadURLResponse, error) {
	if _, err := s.shopRepo.FindByOwnerID(ctx, sellerID); err != nil {
		return nil, err
	}

	ext := path.Ext(req.FileName)
	key := fmt.Sprintf("products/%s%s", uuid.New().String(), ext)

	url, expiresAt, err := s.storage.PresignPut(ctx, key, req.ContentType)
	if err != nil {
		s.logger.Error("Failed to presign upload URL", zap.Error(err))
		return nil, shared.ErrExternalService
	}

	return &ImageUploadURLResponse{
		UploadURL: url,
		Key:       key,
		ExpiresAt: expiresAt,
	}, nil
}

// imageURL resolves the product's image key to a presigned GET URL.
// Resolution failures degrade to an empty URL rather than failing the read.
func (s *ProductService) imageURL(ctx context.Context, product *catalog.Product) string {
	if product.ImageKey == "" || s.storage == nil {
		return ""
	}
	url, err := s.storage.PresignGet(ctx, product.ImageKey)
	if err != nil {
		s.logger.Warn("Failed to presign image URL",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
		return ""
	}
	return url
}
