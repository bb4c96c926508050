package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/souq/backend/internal/domain/order"
	"github.com/souq/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// initiationTTL bounds how long a payment initiation stays absorbed. After it
// lapses the buyer may retry, e.g. after abandoning a Stripe checkout.
const initiationTTL = 15 * time.Minute

// PaymentGateway creates card payment intents with an external processor
type PaymentGateway interface {
	// CreateIntent opens a payment intent for the order's full amount and
	// returns the client secret the buyer's app uses to confirm it.
	CreateIntent(ctx context.Context, o *order.Order) (clientSecret string, err error)
}

// PaymentService handles payment initiation and gateway confirmations
type PaymentService struct {
	orderRepo        order.Repository
	localPaymentRepo order.LocalPaymentRepository
	reconStore       order.ReconciliationStore
	gateway          PaymentGateway
	idempotency      shared.IdempotencyStore
	commission       CommissionPolicy
	logger           *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	orderRepo order.Repository,
	localPaymentRepo order.LocalPaymentRepository,
	reconStore order.ReconciliationStore,
	gateway PaymentGateway,
	idempotency shared.IdempotencyStore,
	commission CommissionPolicy,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		orderRepo:        orderRepo,
		localPaymentRepo: localPaymentRepo,
		reconStore:       reconStore,
		gateway:          gateway,
		idempotency:      idempotency,
		commission:       commission,
		logger:           logger,
	}
}

// Initiate dispatches a payment attempt by method. STRIPE opens a payment
// intent for the order's stored total; BANKILY records the buyer's transaction
// reference and parks the order awaiting admin confirmation. Any other method
// is rejected outright.
func (s *PaymentService) Initiate(ctx context.Context, buyerID uuid.UUID, req InitiatePaymentRequest) (*InitiatePaymentResponse, error) {
	method, err := order.ParsePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}

	o, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, shared.ErrForbidden
	}
	if !o.IsPending() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Order is %s; only pending orders accept payment", o.Status))
	}

	key := fmt.Sprintf("%s:%s", o.ID, method)
	newlyMarked, err := s.idempotency.MarkProcessed(ctx, key, initiationTTL)
	if err != nil {
		// The store is an optimization, not the source of truth; the
		// unique transaction index and order state still hold the line.
		s.logger.Warn("Idempotency check failed, continuing", zap.Error(err))
	} else if !newlyMarked {
		return nil, shared.NewDomainError("ALREADY_PROCESSED", "Payment initiation already in progress for this order")
	}

	var resp *InitiatePaymentResponse
	switch method {
	case order.PaymentMethodStripe:
		resp, err = s.initiateStripe(ctx, o)
	case order.PaymentMethodBankily:
		resp, err = s.initiateBankily(ctx, o, req.TransactionNumber)
	default:
		err = shared.ErrUnsupportedMethod
	}

	if err != nil {
		// Let the buyer retry right away, e.g. with a corrected Bankily
		// reference or after a gateway outage
		if releaseErr := s.idempotency.Release(ctx, key); releaseErr != nil {
			s.logger.Warn("Failed to release initiation key",
				zap.String("key", key),
				zap.Error(releaseErr))
		}
		return nil, err
	}

	return resp, nil
}

func (s *PaymentService) initiateStripe(ctx context.Context, o *order.Order) (*InitiatePaymentResponse, error) {
	clientSecret, err := s.gateway.CreateIntent(ctx, o)
	if err != nil {
		s.logger.Error("Stripe intent creation failed",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
		return nil, shared.ErrExternalService
	}

	s.logger.Info("Stripe payment initiated",
		zap.String("order_id", o.ID.String()),
		zap.String("amount", o.TotalMoney().String()))

	return &InitiatePaymentResponse{
		OrderID:      o.ID,
		Method:       order.PaymentMethodStripe.String(),
		Status:       string(o.Status),
		ClientSecret: clientSecret,
	}, nil
}

func (s *PaymentService) initiateBankily(ctx context.Context, o *order.Order, txNumber string) (*InitiatePaymentResponse, error) {
	existing, err := s.localPaymentRepo.FindByTransactionNumber(ctx, txNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_REFERENCE", "Transaction number has already been submitted")
	}

	payment, err := order.NewLocalPayment(o.ID, txNumber)
	if err != nil {
		return nil, err
	}

	if err := o.MarkAwaitingConfirmation(); err != nil {
		return nil, err
	}

	// One transaction for both rows; a failed order update must not leave
	// an orphaned payment claiming the transaction reference.
	if err := s.reconStore.SubmitLocal(ctx, payment, o); err != nil {
		return nil, err
	}

	s.logger.Info("Bankily payment submitted",
		zap.String("order_id", o.ID.String()),
		zap.String("local_payment_id", payment.ID.String()))

	return &InitiatePaymentResponse{
		OrderID:        o.ID,
		Method:         order.PaymentMethodBankily.String(),
		Status:         string(o.Status),
		LocalPaymentID: &payment.ID,
	}, nil
}

// HandleGatewayConfirmation settles an order the gateway reports as paid.
// Called from the Stripe webhook; a repeat delivery for an already-paid order
// is absorbed silently, as webhook retries are expected.
func (s *PaymentService) HandleGatewayConfirmation(ctx context.Context, orderID uuid.UUID) error {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if o.IsPaid() || o.Status == order.StatusShipped {
		s.logger.Info("Gateway confirmation for already-settled order, ignoring",
			zap.String("order_id", o.ID.String()))
		return nil
	}

	if err := o.MarkPaid(order.PaymentMethodStripe); err != nil {
		return err
	}

	commission, err := order.NewCommissionRecord(o, nil, order.PaymentMethodStripe, s.commission.Rate())
	if err != nil {
		return err
	}

	if err := s.reconStore.SettleGateway(ctx, o, commission); err != nil {
		return err
	}

	s.logger.Info("Order settled via gateway",
		zap.String("order_id", o.ID.String()),
		zap.String("commission", commission.Amount.StringFixed(2)))

	return nil
}
