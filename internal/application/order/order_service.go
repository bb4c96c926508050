package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/souq/backend/internal/domain/order"
	"github.com/souq/backend/internal/domain/shared"
	"github.com/souq/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// OrderService handles order placement and lifecycle
type OrderService struct {
	orderRepo order.Repository
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Create places a new order for the buyer
func (s *OrderService) Create(ctx context.Context, buyerID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	total := valueobject.NewMoneyMRU(req.TotalPrice)

	o, err := order.NewOrder(buyerID, total)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", o.ID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.String("total", total.String()))

	resp := toOrderResponse(o)
	return &resp, nil
}

// GetByID returns an order. Buyers only see their own orders; admins see all.
func (s *OrderService) GetByID(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.BuyerID != requesterID {
		return nil, shared.ErrForbidden
	}

	resp := toOrderResponse(o)
	return &resp, nil
}

// ListByBuyer returns the buyer's orders, newest first
func (s *OrderService) ListByBuyer(ctx context.Context, buyerID uuid.UUID, page, pageSize int) ([]OrderResponse, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	orders, err := s.orderRepo.FindByBuyer(ctx, buyerID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = toOrderResponse(&orders[i])
	}
	return responses, nil
}

// MarkShipped moves a paid order to SHIPPED
func (s *OrderService) MarkShipped(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.MarkShipped(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("Order shipped", zap.String("order_id", o.ID.String()))

	resp := toOrderResponse(o)
	return &resp, nil
}
