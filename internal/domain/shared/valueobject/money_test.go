package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), MRU)
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	assert.Equal(t, MRU, m.Currency())

	_, err = NewMoney(decimal.NewFromInt(100), "")
	assert.Error(t, err)
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("99.99", USD)
	require.NoError(t, err)
	assert.Equal(t, "99.99", m.StringFixed(2))

	_, err = NewMoneyFromString("not-a-number", USD)
	assert.Error(t, err)
}

func TestMoney_AddSubtract(t *testing.T) {
	a := NewMoneyMRU(decimal.NewFromInt(100))
	b := NewMoneyMRU(decimal.NewFromInt(40))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(140)))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(60)))

	usd := Zero(USD)
	_, err = a.Add(usd)
	assert.Error(t, err)
	_, err = a.Subtract(usd)
	assert.Error(t, err)
}

func TestMoney_CalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		percent  int64
		expected string
	}{
		{"five percent of 1000", 1000, 5, "50.00"},
		{"five percent of 2000", 2000, 5, "100.00"},
		{"zero percent", 500, 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMoneyMRU(decimal.NewFromInt(tt.amount))
			got := m.CalculatePercentage(decimal.NewFromInt(tt.percent))
			assert.Equal(t, tt.expected, got.StringFixed(2))
			assert.Equal(t, MRU, got.Currency())
		})
	}
}

func TestMoney_MinorUnits(t *testing.T) {
	m, err := NewMoneyFromString("12.34", USD)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), m.MinorUnits())

	whole := NewMoneyMRU(decimal.NewFromInt(2000))
	assert.Equal(t, int64(200000), whole.MinorUnits())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m, err := NewMoneyFromString("150.50", MRU)
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("42.50"))
	assert.Equal(t, "42.50", m.StringFixed(2))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(123))
}
