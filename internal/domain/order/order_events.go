package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/souq/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeOrder        = "Order"
	AggregateTypeLocalPayment = "LocalPayment"
)

// Event type constants
const (
	EventTypeOrderCreated              = "OrderCreated"
	EventTypeOrderAwaitingConfirmation = "OrderAwaitingConfirmation"
	EventTypeOrderPaid                 = "OrderPaid"
	EventTypeOrderShipped              = "OrderShipped"
	EventTypeLocalPaymentSubmitted     = "LocalPaymentSubmitted"
	EventTypeLocalPaymentVerified      = "LocalPaymentVerified"
)

// OrderCreatedEvent is raised when a buyer checks out
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	BuyerID    uuid.UUID       `json:"buyer_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   string          `json:"currency"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		BuyerID:         o.BuyerID,
		TotalPrice:      o.TotalPrice,
		Currency:        string(o.Currency),
	}
}

// OrderAwaitingConfirmationEvent is raised when a local payment reference is
// submitted and the order awaits admin review
type OrderAwaitingConfirmationEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	BuyerID uuid.UUID `json:"buyer_id"`
}

// NewOrderAwaitingConfirmationEvent creates a new OrderAwaitingConfirmationEvent
func NewOrderAwaitingConfirmationEvent(o *Order) *OrderAwaitingConfirmationEvent {
	return &OrderAwaitingConfirmationEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderAwaitingConfirmation, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		BuyerID:         o.BuyerID,
	}
}

// OrderPaidEvent is raised when an order settles through either channel
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	BuyerID       uuid.UUID       `json:"buyer_id"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(o *Order) *OrderPaidEvent {
	method := ""
	if o.PaymentMethod != nil {
		method = o.PaymentMethod.String()
	}
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		BuyerID:         o.BuyerID,
		TotalPrice:      o.TotalPrice,
		Currency:        string(o.Currency),
		PaymentMethod:   method,
	}
}

// OrderShippedEvent is raised when a paid order is handed to fulfillment
type OrderShippedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	BuyerID uuid.UUID `json:"buyer_id"`
}

// NewOrderShippedEvent creates a new OrderShippedEvent
func NewOrderShippedEvent(o *Order) *OrderShippedEvent {
	return &OrderShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderShipped, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		BuyerID:         o.BuyerID,
	}
}

// LocalPaymentSubmittedEvent is raised when a buyer submits a BANKILY reference
type LocalPaymentSubmittedEvent struct {
	shared.BaseDomainEvent
	PaymentID         uuid.UUID `json:"payment_id"`
	OrderID           uuid.UUID `json:"order_id"`
	TransactionNumber string    `json:"transaction_number"`
}

// NewLocalPaymentSubmittedEvent creates a new LocalPaymentSubmittedEvent
func NewLocalPaymentSubmittedEvent(p *LocalPayment) *LocalPaymentSubmittedEvent {
	return &LocalPaymentSubmittedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeLocalPaymentSubmitted, AggregateTypeLocalPayment, p.ID),
		PaymentID:         p.ID,
		OrderID:           p.OrderID,
		TransactionNumber: p.TransactionNumber,
	}
}

// LocalPaymentVerifiedEvent is raised when an admin approves a local payment
type LocalPaymentVerifiedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID `json:"payment_id"`
	OrderID   uuid.UUID `json:"order_id"`
}

// NewLocalPaymentVerifiedEvent creates a new LocalPaymentVerifiedEvent
func NewLocalPaymentVerifiedEvent(p *LocalPayment) *LocalPaymentVerifiedEvent {
	return &LocalPaymentVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLocalPaymentVerified, AggregateTypeLocalPayment, p.ID),
		PaymentID:       p.ID,
		OrderID:         p.OrderID,
	}
}
