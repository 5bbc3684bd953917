package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WishlistItem struct {
	ID      uuid.UUID `json:"id"`
	Product Product   `json:"product"`
	AddedAt time.Time `json:"added_at"`
}

type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int32           `json:"stock_quantity"`
	ImageUrl      string          `json:"image_url,omitempty"`
	IsInStock     bool            `json:"is_in_stock"`
}
