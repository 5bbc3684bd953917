package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Items      []CartItem      `json:"items"`
	TotalItems int64           `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type CartItem struct {
	ID       uuid.UUID       `json:"id"`
	Product  Product         `json:"product"`
	Quantity int32           `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
	AddedAt  time.Time       `json:"added_at"`
}

type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int32           `json:"stock_quantity"`
	ImageUrl      string          `json:"image_url,omitempty"`
}

// NewCart assembles the cart view. Totals are recomputed from the items on
// every call, never stored.
func NewCart(
	id, userID uuid.UUID,
	createdAt, updatedAt time.Time,
	items []CartItem,
) Cart {
	totalItems := int64(0)
	totalPrice := decimal.Zero
	for _, item := range items {
		totalItems += int64(item.Quantity)
		totalPrice = totalPrice.Add(item.Subtotal)
	}
	return Cart{
		ID:         id,
		UserID:     userID,
		Items:      items,
		TotalItems: totalItems,
		TotalPrice: totalPrice,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}
