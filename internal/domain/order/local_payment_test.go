package order

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/souq/backend/internal/domain/shared"
	"github.com/souq/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalPayment(t *testing.T) {
	orderID := uuid.New()
	p, err := NewLocalPayment(orderID, "TX123")
	require.NoError(t, err)

	assert.Equal(t, orderID, p.OrderID)
	assert.Equal(t, "TX123", p.TransactionNumber)
	assert.False(t, p.IsVerified)
	assert.Nil(t, p.VerifiedAt)
	assert.Len(t, p.GetDomainEvents(), 1)
}

func TestNewLocalPayment_Validation(t *testing.T) {
	_, err := NewLocalPayment(uuid.Nil, "TX123")
	assert.Error(t, err)

	_, err = NewLocalPayment(uuid.New(), "   ")
	assert.Error(t, err)

	_, err = NewLocalPayment(uuid.New(), strings.Repeat("x", 101))
	assert.Error(t, err)
}

func TestNewLocalPayment_TrimsWhitespace(t *testing.T) {
	p, err := NewLocalPayment(uuid.New(), "  TX999  ")
	require.NoError(t, err)
	assert.Equal(t, "TX999", p.TransactionNumber)
}

func TestLocalPayment_Verify(t *testing.T) {
	p, err := NewLocalPayment(uuid.New(), "TX123")
	require.NoError(t, err)

	require.NoError(t, p.Verify())
	assert.True(t, p.IsVerified)
	assert.NotNil(t, p.VerifiedAt)

	// Second verification attempt is rejected, state unchanged
	firstVerifiedAt := *p.VerifiedAt
	err = p.Verify()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_PROCESSED", domainErr.Code)
	assert.Equal(t, firstVerifiedAt, *p.VerifiedAt)
}

func TestNewCommissionRecord(t *testing.T) {
	o, err := NewOrder(uuid.New(), valueobject.NewMoneyMRU(decimal.NewFromInt(2000)))
	require.NoError(t, err)

	paymentID := uuid.New()
	rate := decimal.NewFromFloat(0.05)
	rec, err := NewCommissionRecord(o, &paymentID, PaymentMethodBankily, rate)
	require.NoError(t, err)

	assert.Equal(t, o.ID, rec.OrderID)
	assert.Equal(t, "100.00", rec.Amount.StringFixed(2))
	assert.Equal(t, valueobject.MRU, rec.Currency)
	assert.Equal(t, PaymentMethodBankily, rec.Method)
}

func TestNewCommissionRecord_Validation(t *testing.T) {
	o, err := NewOrder(uuid.New(), valueobject.NewMoneyMRU(decimal.NewFromInt(1000)))
	require.NoError(t, err)

	_, err = NewCommissionRecord(nil, nil, PaymentMethodStripe, decimal.NewFromFloat(0.05))
	assert.Error(t, err)

	_, err = NewCommissionRecord(o, nil, PaymentMethodStripe, decimal.NewFromFloat(-0.01))
	assert.Error(t, err)

	_, err = NewCommissionRecord(o, nil, PaymentMethodStripe, decimal.NewFromFloat(1.5))
	assert.Error(t, err)

	_, err = NewCommissionRecord(o, nil, PaymentMethod("CASH"), decimal.NewFromFloat(0.05))
	assert.Error(t, err)
}

func TestCommissionRecord_FivePercentOfThousand(t *testing.T) {
	o, err := NewOrder(uuid.New(), valueobject.NewMoneyMRU(decimal.NewFromInt(1000)))
	require.NoError(t, err)

	rec, err := NewCommissionRecord(o, nil, PaymentMethodStripe, decimal.NewFromFloat(0.05))
	require.NoError(t, err)
	assert.Equal(t, "50.00", rec.Amount.StringFixed(2))
}
