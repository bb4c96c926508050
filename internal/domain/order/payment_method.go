package order

import "github.com/souq/backend/internal/domain/shared"

// PaymentMethod represents a supported payment channel
type PaymentMethod string

const (
	// PaymentMethodStripe settles through the international card gateway
	PaymentMethodStripe PaymentMethod = "STRIPE"
	// PaymentMethodBankily is the local mobile-money channel requiring
	// manual admin confirmation
	PaymentMethodBankily PaymentMethod = "BANKILY"
)

// IsValid checks if the method is a recognized PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodStripe, PaymentMethodBankily:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// ParsePaymentMethod parses a raw method string into a PaymentMethod.
// Unrecognized methods are rejected explicitly; there is no fall-through.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	method := PaymentMethod(raw)
	if !method.IsValid() {
		return "", shared.NewDomainError("UNSUPPORTED_METHOD", "Unsupported payment method: "+raw)
	}
	return method, nil
}
