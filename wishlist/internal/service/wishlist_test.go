package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/arvandy/storefront/internal/errors"
	"github.com/arvandy/storefront/internal/repository"
	"github.com/arvandy/storefront/internal/testutil"
	"github.com/arvandy/storefront/wishlist/pkg/request"
)

func newWishlistFixture(t *testing.T, c context.Context) (*repository.Queries, WishlistService) {
	t.Helper()
	pool := testutil.NewTestPool(t, c)
	queries := repository.New(pool)
	return queries, NewWishlistService(queries)
}

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

func seedProduct(t *testing.T, c context.Context, queries *repository.Queries) repository.Product {
	t.Helper()
	category, err := queries.InsertCategory(c, uuid.New(), "category-"+uuid.NewString())
	if err != nil {
		t.Fatalf("failed seeding category with error: %s", err)
	}
	product, err := queries.InsertProduct(c, repository.InsertProductParams{
		ID:            uuid.New(),
		Name:          "product-" + uuid.NewString(),
		Description:   "seeded product",
		Price:         repository.NumericFromDecimal(decimal.RequireFromString("12.34")),
		StockQuantity: 7,
		CategoryID:    category.ID,
	})
	if err != nil {
		t.Fatalf("failed seeding product with error: %s", err)
	}
	return product
}

func TestAddItemDeduplicates(t *testing.T) {
	c := context.Background()
	queries, wishlists := newWishlistFixture(t, c)

	user := seedUser(t, c, queries)
	product := seedProduct(t, c, queries)

	items, err := wishlists.AddItem(c, user.ID, request.AddWishlistItem{ProductID: product.ID})
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].Product.ID)
	assert.True(t, items[0].Product.IsInStock)

	_, err = wishlists.AddItem(c, user.ID, request.AddWishlistItem{ProductID: product.ID})
	assert.ErrorIs(t, err, inErrors.ErrAlreadyInWishlist)
	assert.ErrorIs(t, err, inErrors.ErrValidation)

	items, err = wishlists.FindWishlist(c, user.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAddItemUnknownProduct(t *testing.T) {
	c := context.Background()
	queries, wishlists := newWishlistFixture(t, c)

	user := seedUser(t, c, queries)

	_, err := wishlists.AddItem(c, user.ID, request.AddWishlistItem{ProductID: uuid.New()})
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestRemoveItemById(t *testing.T) {
	c := context.Background()
	queries, wishlists := newWishlistFixture(t, c)

	user := seedUser(t, c, queries)
	product := seedProduct(t, c, queries)

	items, err := wishlists.AddItem(c, user.ID, request.AddWishlistItem{ProductID: product.ID})
	assert.NoError(t, err)

	assert.NoError(t, wishlists.RemoveItemById(c, user.ID, items[0].ID))

	err = wishlists.RemoveItemById(c, user.ID, items[0].ID)
	assert.ErrorIs(t, err, inErrors.ErrWishlistNotFound)
}

func TestRemoveItemByProduct(t *testing.T) {
	c := context.Background()
	queries, wishlists := newWishlistFixture(t, c)

	user := seedUser(t, c, queries)
	product := seedProduct(t, c, queries)

	_, err := wishlists.AddItem(c, user.ID, request.AddWishlistItem{ProductID: product.ID})
	assert.NoError(t, err)

	assert.NoError(t, wishlists.RemoveItemByProduct(c, user.ID, product.ID))

	err = wishlists.RemoveItemByProduct(c, user.ID, product.ID)
	assert.ErrorIs(t, err, inErrors.ErrWishlistNotFound)
}

func TestWishlistIsolatedPerUser(t *testing.T) {
	c := context.Background()
	queries, wishlists := newWishlistFixture(t, c)

	owner := seedUser(t, c, queries)
	other := seedUser(t, c, queries)
	product := seedProduct(t, c, queries)

	items, err := wishlists.AddItem(c, owner.ID, request.AddWishlistItem{ProductID: product.ID})
	assert.NoError(t, err)

	// The same product can appear on another user's wishlist.
	otherItems, err := wishlists.AddItem(c, other.ID, request.AddWishlistItem{ProductID: product.ID})
	assert.NoError(t, err)
	assert.Len(t, otherItems, 1)

	// But a user cannot remove someone else's entry.
	err = wishlists.RemoveItemById(c, other.ID, items[0].ID)
	assert.ErrorIs(t, err, inErrors.ErrWishlistNotFound)

	items, err = wishlists.FindWishlist(c, owner.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}
