package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/souq/backend/internal/domain/order"
	"github.com/souq/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CommissionPolicy supplies the platform's commission rate
type CommissionPolicy interface {
	Rate() decimal.Decimal
}

// FixedCommissionPolicy is a CommissionPolicy with a configured rate
type FixedCommissionPolicy struct {
	rate decimal.Decimal
}

// NewFixedCommissionPolicy creates a policy with the given fractional rate
func NewFixedCommissionPolicy(rate decimal.Decimal) FixedCommissionPolicy {
	return FixedCommissionPolicy{rate: rate}
}

// Rate returns the commission rate
func (p FixedCommissionPolicy) Rate() decimal.Decimal {
	return p.rate
}

// ReconciliationService handles admin verification of local payments
type ReconciliationService struct {
	orderRepo        order.Repository
	localPaymentRepo order.LocalPaymentRepository
	reconStore       order.ReconciliationStore
	commission       CommissionPolicy
	logger           *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	orderRepo order.Repository,
	localPaymentRepo order.LocalPaymentRepository,
	reconStore order.ReconciliationStore,
	commission CommissionPolicy,
	logger *zap.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		orderRepo:        orderRepo,
		localPaymentRepo: localPaymentRepo,
		reconStore:       reconStore,
		commission:       commission,
		logger:           logger,
	}
}

// Approve verifies a local payment: the payment is marked verified, the order
// moves to PAID and the commission is recorded, all in one transaction. A
// payment that is already verified yields ALREADY_PROCESSED, so a second
// approver or a retried request never settles twice.
func (s *ReconciliationService) Approve(ctx context.Context, adminID, paymentID uuid.UUID) (*ApprovalResponse, error) {
	payment, err := s.localPaymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	o, err := s.orderRepo.FindByID(ctx, payment.OrderID)
	if err != nil {
		return nil, err
	}

	if err := payment.Verify(); err != nil {
		return nil, err
	}
	if err := o.MarkPaid(order.PaymentMethodBankily); err != nil {
		return nil, err
	}

	commission, err := order.NewCommissionRecord(o, &payment.ID, order.PaymentMethodBankily, s.commission.Rate())
	if err != nil {
		return nil, err
	}

	if err := s.reconStore.Settle(ctx, payment, o, commission); err != nil {
		return nil, err
	}

	s.logger.Info("Local payment approved",
		zap.String("admin_id", adminID.String()),
		zap.String("local_payment_id", payment.ID.String()),
		zap.String("order_id", o.ID.String()),
		zap.String("commission", commission.Amount.StringFixed(2)))

	return &ApprovalResponse{
		Payment:    toLocalPaymentResponse(payment),
		Order:      toOrderResponse(o),
		Commission: toCommissionResponse(commission),
	}, nil
}

// ListLocalPayments returns local payments for the admin review queue,
// optionally filtered by verification state
func (s *ReconciliationService) ListLocalPayments(ctx context.Context, req ListLocalPaymentsRequest) ([]LocalPaymentResponse, int64, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}

	payments, total, err := s.localPaymentRepo.FindAll(ctx, req.Verified, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LocalPaymentResponse, len(payments))
	for i := range payments {
		responses[i] = toLocalPaymentResponse(&payments[i])
	}
	return responses, total, nil
}
