package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/souq/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	p, err := NewProduct(uuid.New(), "Melhfa", "Hand-dyed melhfa", valueobject.NewMoneyMRU(decimal.NewFromInt(450)))
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	shopID := uuid.New()
	price := valueobject.NewMoneyMRU(decimal.NewFromInt(450))
	p, err := NewProduct(shopID, "  Melhfa  ", "Hand-dyed melhfa", price)
	require.NoError(t, err)

	assert.Equal(t, shopID, p.ShopID)
	assert.Equal(t, "Melhfa", p.Title)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, valueobject.MRU, p.Currency)
	assert.Len(t, p.GetDomainEvents(), 1)
}

func TestNewProduct_Validation(t *testing.T) {
	price := valueobject.NewMoneyMRU(decimal.NewFromInt(100))

	_, err := NewProduct(uuid.Nil, "Melhfa", "", price)
	assert.Error(t, err)

	_, err = NewProduct(uuid.New(), "", "", price)
	assert.Error(t, err)

	_, err = NewProduct(uuid.New(), strings.Repeat("x", 201), "", price)
	assert.Error(t, err)

	_, err = NewProduct(uuid.New(), "Melhfa", "", valueobject.NewMoneyMRU(decimal.Zero))
	assert.Error(t, err)

	_, err = NewProduct(uuid.New(), "Melhfa", "", valueobject.NewMoneyMRU(decimal.NewFromInt(-5)))
	assert.Error(t, err)
}

func TestProduct_Update(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.Update("Melhfa premium", "Updated description"))
	assert.Equal(t, "Melhfa premium", p.Title)
	assert.Equal(t, "Updated description", p.Description)

	assert.Error(t, p.Update("", "desc"))
}

func TestProduct_SetPrice(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.SetPrice(valueobject.NewMoneyMRU(decimal.NewFromInt(500))))
	assert.True(t, p.Price.Equal(decimal.NewFromInt(500)))

	assert.Error(t, p.SetPrice(valueobject.NewMoneyMRU(decimal.Zero)))
}

func TestProduct_SetImageKey(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.SetImageKey("products/abc123.jpg"))
	assert.Equal(t, "products/abc123.jpg", p.ImageKey)

	assert.Error(t, p.SetImageKey(strings.Repeat("k", 501)))
}

func TestProduct_PriceMoney(t *testing.T) {
	p := createTestProduct(t)

	m := p.PriceMoney()
	assert.Equal(t, "450.00", m.StringFixed(2))
	assert.Equal(t, valueobject.MRU, m.Currency())
}
