package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	Name          string          `validate:"required"        json:"name"`
	Description   string          `                           json:"description"`
	Price         decimal.Decimal `validate:"required"        json:"price"`
	StockQuantity int32           `validate:"gte=0"           json:"stock_quantity"`
	ImageUrl      string          `validate:"omitempty,url"   json:"image_url"`
	CategoryID    uuid.UUID       `validate:"required"        json:"category"`
}

// UpdateProduct carries partial updates; nil fields are left untouched.
type UpdateProduct struct {
	Name          *string          `validate:"omitempty,min=1" json:"name"`
	Description   *string          `                           json:"description"`
	Price         *decimal.Decimal `                           json:"price"`
	StockQuantity *int32           `validate:"omitempty,gte=0" json:"stock_quantity"`
	ImageUrl      *string          `validate:"omitempty,url"   json:"image_url"`
	CategoryID    *uuid.UUID       `                           json:"category"`
}

// UpdateStock carries a signed stock delta. The pointer distinguishes an
// absent field from an explicit zero, which is a valid no-op.
type UpdateStock struct {
	QuantityChange *int32 `validate:"required" json:"quantity_change"`
}

type FindProducts struct {
	CategoryID *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	InStock    bool
	Search     string
}

type Category struct {
	Name string `validate:"required,max=100" json:"name"`
}
