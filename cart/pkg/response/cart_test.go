package response

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewCartEmpty(t *testing.T) {
	cart := NewCart(uuid.New(), uuid.New(), time.Now(), time.Now(), []CartItem{})

	assert.Empty(t, cart.Items)
	assert.Equal(t, int64(0), cart.TotalItems)
	assert.True(t, cart.TotalPrice.Equal(decimal.Zero))
}

func TestNewCartTotals(t *testing.T) {
	price := decimal.RequireFromString("19.99")
	items := []CartItem{
		{
			ID:       uuid.New(),
			Product:  Product{ID: uuid.New(), Name: "keyboard", Price: price, StockQuantity: 5},
			Quantity: 3,
			Subtotal: price.Mul(decimal.NewFromInt(3)),
		},
		{
			ID:       uuid.New(),
			Product:  Product{ID: uuid.New(), Name: "mouse", Price: decimal.RequireFromString("9.50"), StockQuantity: 10},
			Quantity: 2,
			Subtotal: decimal.RequireFromString("19.00"),
		},
	}

	cart := NewCart(uuid.New(), uuid.New(), time.Now(), time.Now(), items)

	assert.Equal(t, int64(5), cart.TotalItems)
	assert.True(t, cart.TotalPrice.Equal(decimal.RequireFromString("78.97")),
		"expected 78.97 got %s", cart.TotalPrice.String())
}

func TestNewCartSingleItem(t *testing.T) {
	price := decimal.RequireFromString("2.50")
	items := []CartItem{
		{
			ID:       uuid.New(),
			Product:  Product{ID: uuid.New(), Name: "cable", Price: price, StockQuantity: 100},
			Quantity: 4,
			Subtotal: price.Mul(decimal.NewFromInt(4)),
		},
	}

	cart := NewCart(uuid.New(), uuid.New(), time.Now(), time.Now(), items)

	assert.Equal(t, int64(4), cart.TotalItems)
	assert.True(t, cart.TotalPrice.Equal(decimal.RequireFromString("10.00")))
}
