package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int32           `json:"stock_quantity"`
	ImageUrl      string          `json:"image_url,omitempty"`
	CategoryID    uuid.UUID       `json:"category"`
	IsInStock     bool            `json:"is_in_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Category struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ProductsCount int64     `json:"products_count"`
}
