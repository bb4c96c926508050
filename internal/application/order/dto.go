package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/souq/backend/internal/domain/order"
)

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	TotalPrice decimal.Decimal `json:"total_price" binding:"required"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	BuyerID       uuid.UUID       `json:"buyer_id"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	ShippedAt     *time.Time      `json:"shipped_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InitiatePaymentRequest represents a request to pay for an order.
// TransactionNumber is required for BANKILY and ignored for STRIPE.
type InitiatePaymentRequest struct {
	OrderID           uuid.UUID `json:"order_id" binding:"required"`
	Method            string    `json:"method" binding:"required"`
	TransactionNumber string    `json:"transaction_number" binding:"max=100"`
}

// InitiatePaymentResponse carries the outcome of a payment initiation.
// For STRIPE, ClientSecret lets the client confirm the intent. For BANKILY,
// the order moves to AWAITING_CONFIRMATION and LocalPaymentID is set.
type InitiatePaymentResponse struct {
	OrderID        uuid.UUID  `json:"order_id"`
	Method         string     `json:"method"`
	Status         string     `json:"status"`
	ClientSecret   string     `json:"client_secret,omitempty"`
	LocalPaymentID *uuid.UUID `json:"local_payment_id,omitempty"`
}

// LocalPaymentResponse represents a local payment in API responses
type LocalPaymentResponse struct {
	ID                uuid.UUID  `json:"id"`
	OrderID           uuid.UUID  `json:"order_id"`
	TransactionNumber string     `json:"transaction_number"`
	IsVerified        bool       `json:"is_verified"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ListLocalPaymentsRequest represents admin list query parameters
type ListLocalPaymentsRequest struct {
	Verified *bool `form:"verified"`
	Page     int   `form:"page" binding:"omitempty,min=1"`
	PageSize int   `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ApprovalResponse carries the outcome of an admin approval
type ApprovalResponse struct {
	Payment    LocalPaymentResponse `json:"payment"`
	Order      OrderResponse        `json:"order"`
	Commission CommissionResponse   `json:"commission"`
}

// CommissionResponse represents a commission ledger entry
type CommissionResponse struct {
	ID       uuid.UUID       `json:"id"`
	OrderID  uuid.UUID       `json:"order_id"`
	Method   string          `json:"method"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	var method *string
	if o.PaymentMethod != nil {
		m := o.PaymentMethod.String()
		method = &m
	}
	return OrderResponse{
		ID:            o.ID,
		BuyerID:       o.BuyerID,
		TotalPrice:    o.TotalPrice,
		Currency:      string(o.Currency),
		Status:        string(o.Status),
		PaymentMethod: method,
		PaidAt:        o.PaidAt,
		ShippedAt:     o.ShippedAt,
		CreatedAt:     o.CreatedAt,
	}
}

func toLocalPaymentResponse(p *order.LocalPayment) LocalPaymentResponse {
	return LocalPaymentResponse{
		ID:                p.ID,
		OrderID:           p.OrderID,
		TransactionNumber: p.TransactionNumber,
		IsVerified:        p.IsVerified,
		VerifiedAt:        p.VerifiedAt,
		CreatedAt:         p.CreatedAt,
	}
}

func toCommissionResponse(c *order.CommissionRecord) CommissionResponse {
	return CommissionResponse{
		ID:       c.ID,
		OrderID:  c.OrderID,
		Method:   c.Method.String(),
		Rate:     c.Rate,
		Amount:   c.Amount,
		Currency: string(c.Currency),
	}
}
