package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	cartResponse "github.com/arvandy/storefront/cart/pkg/response"
	productResponse "github.com/arvandy/storefront/product/pkg/response"
	userResponse "github.com/arvandy/storefront/user/pkg/response"
	wishlistResponse "github.com/arvandy/storefront/wishlist/pkg/response"
)

func (u User) Response() userResponse.User {
	return userResponse.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt.Time,
	}
}

func (p Product) Response() productResponse.Product {
	return productResponse.Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         decimal.NewFromBigInt(p.Price.Int, p.Price.Exp),
		StockQuantity: p.StockQuantity,
		ImageUrl:      p.ImageUrl.String,
		CategoryID:    p.CategoryID,
		IsInStock:     p.StockQuantity > 0,
		CreatedAt:     p.CreatedAt.Time,
		UpdatedAt:     p.UpdatedAt.Time,
	}
}

func (row FindCategoriesRow) Response() productResponse.Category {
	return productResponse.Category{
		ID:            row.ID,
		Name:          row.Name,
		ProductsCount: row.ProductsCount,
	}
}

func (row FindCartItemsByCartIdRow) Response() cartResponse.CartItem {
	price := decimal.NewFromBigInt(row.Price.Int, row.Price.Exp)
	return cartResponse.CartItem{
		ID: row.ID,
		Product: cartResponse.Product{
			ID:            row.ProductID,
			Name:          row.ProductName,
			Price:         price,
			StockQuantity: row.StockQuantity,
			ImageUrl:      row.ImageUrl.String,
		},
		Quantity: row.Quantity,
		Subtotal: price.Mul(decimal.NewFromInt32(row.Quantity)),
		AddedAt:  row.CreatedAt.Time,
	}
}

func (row FindWishlistByUserIdRow) Response() wishlistResponse.WishlistItem {
	return wishlistResponse.WishlistItem{
		ID: row.ID,
		Product: wishlistResponse.Product{
			ID:            row.ProductID,
			Name:          row.ProductName,
			Description:   row.Description,
			Price:         decimal.NewFromBigInt(row.Price.Int, row.Price.Exp),
			StockQuantity: row.StockQuantity,
			ImageUrl:      row.ImageUrl.String,
			IsInStock:     row.StockQuantity > 0,
		},
		AddedAt: row.CreatedAt.Time,
	}
}

// NumericFromDecimal converts a shopspring decimal into the pgtype
// representation used for money columns.
func NumericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:              d.Coefficient(),
		Exp:              d.Exponent(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}
