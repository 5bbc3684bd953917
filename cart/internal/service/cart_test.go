package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/arvandy/storefront/cart/pkg/request"
	inErrors "github.com/arvandy/storefront/internal/errors"
	"github.com/arvandy/storefront/internal/repository"
	"github.com/arvandy/storefront/internal/testutil"
)

func seedUser(t *testing.T, c context.Context, queries *repository.Queries) repository.User {
	t.Helper()
	user, err := queries.InsertUser(c, repository.InsertUserParams{
		ID:       uuid.New(),
		Username: "user-" + uuid.NewString(),
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed-password",
	})
	if err != nil {
		t.Fatalf("failed seeding user with error: %s", err)
	}
	return user
}

func seedProduct(
	t *testing.T,
	c context.Context,
	queries *repository.Queries,
	price string,
	stock int32,
) repository.Product {
	t.Helper()
	category, err := queries.InsertCategory(c, uuid.New(), "category-"+uuid.NewString())
	if err != nil {
		t.Fatalf("failed seeding category with error: %s", err)
	}
	product, err := queries.InsertProduct(c, repository.InsertProductParams{
		ID:            uuid.New(),
		Name:          "product-" + uuid.NewString(),
		Description:   "seeded product",
		Price:         repository.NumericFromDecimal(decimal.RequireFromString(price)),
		StockQuantity: stock,
		CategoryID:    category.ID,
	})
	if err != nil {
		t.Fatalf("failed seeding product with error: %s", err)
	}
	return product
}

func newCartFixture(t *testing.T, c context.Context) (*pgxpool.Pool, *repository.Queries, CartService) {
	t.Helper()
	pool := testutil.NewTestPool(t, c)
	queries := repository.New(pool)
	return pool, queries, NewCartService(pool, queries)
}

func TestAddItemBoundedByStock(t *testing.T) {
	c := context.Background()
	_, queries, carts := newCartFixture(t, c)

	user := seedUser(t, c, queries)
	product := seedProduct(t, c, queries, "10.00", 5)

	cart, err := carts.AddItem(c, user.ID, request.AddCartItem{ProductID: product.ID, Quantity: 3})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), cart.TotalItems)
	assert.Len(t, cart.Items, 1)
	assert.True(t, cart.TotalPrice.Equal(decimal.RequireFromString("30.00")))

	// 3 carted + 3 requested exceeds the 5 in stock.
	_, err = carts.AddItem(c, user.ID, request.AddCartItem{ProductID: product.ID, Quantity: 3})
	assert.ErrorIs(t, err, inErrors.ErrInsufficientStock)
	assert.ErrorIs(t, err, inErrors.ErrValidation)

	cart, err = carts.GetCart(c, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), cart.TotalItems)
}

func TestAddItemAggregatesQuantity(t *testing.T) {
	c := context.Background()
	_, queries, carts := newCartFixture(t, c)

	user := seedUser(t, c, queries)
	product := seedProduct(t, c, queries, "4.25", 10)

	_, err := carts.AddItem(c, user.ID, request.AddCartItem{ProductID: product.ID, Quantity: 2})
	assert.NoError(t, err)
	cart, err := carts.AddItem(c, user.ID, request.AddCartItem{ProductID: product.ID, Quantity: 4})
	assert.NoError(t, err)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int32(6), cart.Items[0].Quantity)
	assert.Equal(t, int64(6), cart.TotalItems)
	assert.True(t, cart.TotalPrice.Equal(decimal.RequireFromString("25.50")))
}

func TestAddItemUnknownProduct(t *testing.T) {
	c := context.Background()
	_, queries, carts := newCartFixture(t, c)

	user := seedUser(t, c, queries)

	_, err := carts.AddItem(c, user.ID, request.AddCartItem{ProductID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
	assert.ErrorIs(t, err, inErrors.ErrNotFound)
}

func TestUpdateItemQuantity(t *testing.T) {
	c := context.Background()
	_, queries, carts := newCartFixture(t, c)

	user := seedUser(t, c, queries)
	product := seedProduct(t, c, queries, "10.00", 5)

	cart, err := carts.AddItem(c, user.ID, request.AddCartItem{ProductID: product.ID, Quantity: 3})
	assert.NoError(t, err)
	itemID := cart.Items[0].ID

	// Raising to the full stock is allowed.
	cart, err = carts.UpdateItem(c, user.ID, itemID, request.UpdateCartItem{Quantity: 5})
	assert.NoError(t, err)
	assert.Equal(t, int32(5), cart.Items[0].Quantity)
	assert.True(t, cart.TotalPrice.Equal(decimal.RequireFromString("50.00")))

	// One past the stock is not.
	_, err = carts.UpdateItem(c, user.ID, itemID, request.UpdateCartItem{Quantity: 6})
	assert.ErrorIs(t, err, inErrors.ErrInsufficientStock)
}

func TestUpdateItemOfAnotherUser(t *testing.T) {
	c := context.Background()
	_, queries, carts := newCartFixture(t, c)

	owner := seedUser(t, c, queries)
	intruder := seedUser(t, c, queries)
	product := seedProduct(t, c, queries, "10.00", 5)

	cart, err := carts.AddItem(c, owner.ID, request.AddCartItem{ProductID: product.ID, Quantity: 1})
	assert.NoError(t, err)
	itemID := cart.Items[0].ID

	// A foreign item is indistinguishable from a missing one.
	_, err = carts.UpdateItem(c, intruder.ID, itemID, request.UpdateCartItem{Quantity: 2})
	assert.ErrorIs(t, err, inErrors.ErrCartItemNotFound)

	err = carts.RemoveItem(c, intruder.ID, itemID)
	assert.ErrorIs(t, err, inErrors.ErrCartItemNotFound)

	cart, err = carts.GetCart(c, owner.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cart.TotalItems)
}

func TestRemoveItem(t *testing.T) {
	c := context.Background()
	_, queries, carts := newCartFixture(t, c)

	user := seedUser(t, c, queries)
	product := seedProduct(t, c, queries, "10.00", 5)

	cart, err := carts.AddItem(c, user.ID, request.AddCartItem{ProductID: product.ID, Quantity: 2})
	assert.NoError(t, err)
	itemID := cart.Items[0].ID

	assert.NoError(t, carts.RemoveItem(c, user.ID, itemID))

	cart, err = carts.GetCart(c, user.ID)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, int64(0), cart.TotalItems)

	err = carts.RemoveItem(c, user.ID, itemID)
	assert.ErrorIs(t, err, inErrors.ErrCartItemNotFound)
}

func TestClearCart(t *testing.T) {
	c := context.Background()
	_, queries, carts := newCartFixture(t, c)

	user := seedUser(t, c, queries)
	first := seedProduct(t, c, queries, "10.00", 5)
	second := seedProduct(t, c, queries, "3.00", 8)

	_, err := carts.AddItem(c, user.ID, request.AddCartItem{ProductID: first.ID, Quantity: 2})
	assert.NoError(t, err)
	_, err = carts.AddItem(c, user.ID, request.AddCartItem{ProductID: second.ID, Quantity: 3})
	assert.NoError(t, err)

	assert.NoError(t, carts.ClearCart(c, user.ID))

	cart, err := carts.GetCart(c, user.ID)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalPrice.Equal(decimal.Zero))

	// Clearing an already empty cart succeeds.
	assert.NoError(t, carts.ClearCart(c, user.ID))
}

func TestGetCartCreatesLazily(t *testing.T) {
	c := context.Background()
	_, queries, carts := newCartFixture(t, c)

	user := seedUser(t, c, queries)

	cart, err := carts.GetCart(c, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, cart.UserID)
	assert.Empty(t, cart.Items)

	again, err := carts.GetCart(c, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}
