package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/souq/backend/internal/domain/shared"
	"github.com/souq/backend/internal/domain/shared/valueobject"
)

// CommissionRecord is the platform's cut of a settled order, persisted at
// settlement time so the ledger can be audited later. At most one record
// exists per order.
type CommissionRecord struct {
	shared.BaseEntity
	OrderID        uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex"`
	LocalPaymentID *uuid.UUID           `gorm:"type:uuid;index"`
	Method         PaymentMethod        `gorm:"type:varchar(20);not null"`
	Rate           decimal.Decimal      `gorm:"type:decimal(6,4);not null"`
	Amount         decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Currency       valueobject.Currency `gorm:"type:varchar(3);not null"`
}

// TableName returns the table name for GORM
func (CommissionRecord) TableName() string {
	return "commission_records"
}

// NewCommissionRecord computes and records the commission for a settled order.
// rate is a fraction (0.05 for 5%), injected from configuration.
func NewCommissionRecord(o *Order, localPaymentID *uuid.UUID, method PaymentMethod, rate decimal.Decimal) (*CommissionRecord, error) {
	if o == nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order cannot be nil")
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_RATE", "Commission rate must be between 0 and 1")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("UNSUPPORTED_METHOD", "Unsupported payment method: "+method.String())
	}

	amount := o.TotalPrice.Mul(rate).Round(2)

	return &CommissionRecord{
		BaseEntity:     shared.NewBaseEntity(),
		OrderID:        o.ID,
		LocalPaymentID: localPaymentID,
		Method:         method,
		Rate:           rate,
		Amount:         amount,
		Currency:       o.Currency,
	}, nil
}

// AmountMoney returns the commission amount as a Money value object
func (c *CommissionRecord) AmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(c.Amount, c.Currency)
	return m
}
