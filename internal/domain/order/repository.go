package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/souq/backend/internal/domain/shared"
)

// Repository provides access to orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	// SaveWithLock persists the order with an optimistic version check,
	// returning CONCURRENCY_CONFLICT when another writer got there first.
	SaveWithLock(ctx context.Context, order *Order) error
}

// LocalPaymentRepository provides access to local payments
type LocalPaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LocalPayment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*LocalPayment, error)
	FindByTransactionNumber(ctx context.Context, txNumber string) (*LocalPayment, error)
	FindAll(ctx context.Context, verified *bool, filter shared.Filter) ([]LocalPayment, int64, error)
	Save(ctx context.Context, payment *LocalPayment) error
}

// CommissionRecordRepository provides access to the commission ledger
type CommissionRecordRepository interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*CommissionRecord, error)
	Save(ctx context.Context, record *CommissionRecord) error
}

// ReconciliationStore settles a verified local payment atomically: the
// verified flag flip, the order status transition and the commission record
// are written in one transaction. The verified-flag update is conditional on
// is_verified = false so a concurrent second approver observes
// ALREADY_PROCESSED rather than double-settling.
type ReconciliationStore interface {
	// SubmitLocal records a freshly submitted local payment and parks its
	// order awaiting confirmation in one transaction, so a failed order
	// update cannot leave an orphaned payment row behind.
	SubmitLocal(ctx context.Context, payment *LocalPayment, o *Order) error
	Settle(ctx context.Context, payment *LocalPayment, o *Order, commission *CommissionRecord) error
	// SettleGateway settles a gateway-confirmed order (no local payment):
	// the status transition and commission record are written together.
	SettleGateway(ctx context.Context, o *Order, commission *CommissionRecord) error
}
