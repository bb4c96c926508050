package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/souq/backend/internal/domain/shared"
)

// LocalPayment records a manually-submitted BANKILY transaction reference
// awaiting human verification. Each payment belongs to exactly one order and
// its transaction number is unique across all local payments, so a single
// reference can never settle two orders.
type LocalPayment struct {
	shared.BaseAggregateRoot
	OrderID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	TransactionNumber string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	IsVerified        bool      `gorm:"not null;default:false"`
	VerifiedAt        *time.Time
}

// TableName returns the table name for GORM
func (LocalPayment) TableName() string {
	return "local_payments"
}

// NewLocalPayment creates a new unverified local payment for an order
func NewLocalPayment(orderID uuid.UUID, transactionNumber string) (*LocalPayment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	transactionNumber = strings.TrimSpace(transactionNumber)
	if transactionNumber == "" {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_NUMBER", "Transaction number cannot be empty")
	}
	if len(transactionNumber) > 100 {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_NUMBER", "Transaction number cannot exceed 100 characters")
	}

	p := &LocalPayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		TransactionNumber: transactionNumber,
		IsVerified:        false,
	}

	p.AddDomainEvent(NewLocalPaymentSubmittedEvent(p))

	return p, nil
}

// Verify marks the payment as verified. A payment is verified exactly once;
// a second attempt is rejected so commission is never double-counted.
func (p *LocalPayment) Verify() error {
	if p.IsVerified {
		return shared.ErrAlreadyProcessed
	}

	now := time.Now()
	p.IsVerified = true
	p.VerifiedAt = &now
	p.UpdatedAt = now

	p.AddDomainEvent(NewLocalPaymentVerifiedEvent(p))

	return nil
}
