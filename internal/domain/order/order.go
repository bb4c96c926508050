package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/souq/backend/internal/domain/shared"
	"github.com/souq/backend/internal/domain/shared/valueobject"
)

// Status represents the lifecycle status of an order
type Status string

const (
	StatusPending              Status = "PENDING"
	StatusAwaitingConfirmation Status = "AWAITING_CONFIRMATION"
	StatusPaid                 Status = "PAID"
	StatusShipped              Status = "SHIPPED"
)

// IsValid checks if the status is a valid order Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAwaitingConfirmation, StatusPaid, StatusShipped:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions are strictly forward: an order never moves backward.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusAwaitingConfirmation || target == StatusPaid
	case StatusAwaitingConfirmation:
		return target == StatusPaid
	case StatusPaid:
		return target == StatusShipped
	case StatusShipped:
		return false
	}
	return false
}

// Order represents a buyer's order aggregate root.
// Orders are created at checkout in PENDING status and are mutated only by the
// payment reconciliation workflow and fulfillment. They are never deleted.
type Order struct {
	shared.BaseAggregateRoot
	BuyerID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	TotalPrice    decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Currency      valueobject.Currency `gorm:"type:varchar(3);not null;default:'MRU'"`
	Status        Status               `gorm:"type:varchar(30);not null;default:'PENDING'"`
	PaymentMethod *PaymentMethod       `gorm:"type:varchar(20)"`
	PaidAt        *time.Time
	ShippedAt     *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in PENDING status
func NewOrder(buyerID uuid.UUID, total valueobject.Money) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}
	if !total.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order total must be positive")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		TotalPrice:        total.Amount(),
		Currency:          total.Currency(),
		Status:            StatusPending,
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// TotalMoney returns the order total as a Money value object
func (o *Order) TotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(o.TotalPrice, o.Currency)
	return m
}

// MarkAwaitingConfirmation transitions the order PENDING -> AWAITING_CONFIRMATION.
// Raised on the BANKILY dispatch path while the admin review is outstanding.
func (o *Order) MarkAwaitingConfirmation() error {
	if !o.Status.CanTransitionTo(StatusAwaitingConfirmation) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot await confirmation for order in %s status", o.Status))
	}

	method := PaymentMethodBankily
	o.Status = StatusAwaitingConfirmation
	o.PaymentMethod = &method
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderAwaitingConfirmationEvent(o))

	return nil
}

// MarkPaid transitions the order to PAID, recording which channel settled it
func (o *Order) MarkPaid(method PaymentMethod) error {
	if !o.Status.CanTransitionTo(StatusPaid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark order in %s status as paid", o.Status))
	}
	if !method.IsValid() {
		return shared.NewDomainError("UNSUPPORTED_METHOD", "Unsupported payment method: "+method.String())
	}

	now := time.Now()
	o.Status = StatusPaid
	o.PaymentMethod = &method
	o.PaidAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// MarkShipped transitions the order PAID -> SHIPPED
func (o *Order) MarkShipped() error {
	if !o.Status.CanTransitionTo(StatusShipped) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ship order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = StatusShipped
	o.ShippedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderShippedEvent(o))

	return nil
}

// IsPending returns true if the order awaits a payment dispatch
func (o *Order) IsPending() bool {
	return o.Status == StatusPending
}

// IsPaid returns true if the order has been settled
func (o *Order) IsPaid() bool {
	return o.Status == StatusPaid
}
