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
	"github.com/arvandy/storefront/product/pkg/request"
	"github.com/arvandy/storefront/product/pkg/response"
)

func newCatalogFixture(
	t *testing.T,
	c context.Context,
) (*repository.Queries, ProductService, CategoryService) {
	t.Helper()
	pool := testutil.NewTestPool(t, c)
	cache := testutil.NewTestCache(t, c)
	queries := repository.New(pool)
	return queries, NewProductService(pool, queries, cache), NewCategoryService(queries, cache)
}

func seedCatalog(
	t *testing.T,
	c context.Context,
	products ProductService,
	categories CategoryService,
) (response.Category, []response.Product) {
	t.Helper()

	category, err := categories.InsertCategory(c, request.Category{Name: "peripherals-" + uuid.NewString()})
	if err != nil {
		t.Fatalf("failed seeding category with error: %s", err)
	}

	seeds := []request.Product{
		{
			Name:          "mechanical keyboard",
			Description:   "tenkeyless",
			Price:         decimal.RequireFromString("89.99"),
			StockQuantity: 12,
			CategoryID:    category.ID,
		},
		{
			Name:          "wireless mouse",
			Description:   "ergonomic",
			Price:         decimal.RequireFromString("24.50"),
			StockQuantity: 3,
			CategoryID:    category.ID,
		},
		{
			Name:          "usb hub",
			Description:   "4 ports",
			Price:         decimal.RequireFromString("15.00"),
			StockQuantity: 0,
			CategoryID:    category.ID,
		},
	}
	created := make([]response.Product, 0, len(seeds))
	for _, seed := range seeds {
		product, err := products.InsertProduct(c, seed)
		if err != nil {
			t.Fatalf("failed seeding product with error: %s", err)
		}
		created = append(created, product)
	}
	return category, created
}

func TestInsertProductUnknownCategory(t *testing.T) {
	c := context.Background()
	_, products, _ := newCatalogFixture(t, c)

	_, err := products.InsertProduct(c, request.Product{
		Name:          "orphan",
		Price:         decimal.RequireFromString("1.00"),
		StockQuantity: 1,
		CategoryID:    uuid.New(),
	})
	assert.ErrorIs(t, err, inErrors.ErrCategoryNotFound)
}

func TestFindProductsFilters(t *testing.T) {
	c := context.Background()
	_, products, categories := newCatalogFixture(t, c)
	category, seeded := seedCatalog(t, c, products, categories)

	all, err := products.FindProducts(c, request.FindProducts{})
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	byCategory, err := products.FindProducts(c, request.FindProducts{CategoryID: &category.ID})
	assert.NoError(t, err)
	assert.Len(t, byCategory, 3)

	minPrice := decimal.RequireFromString("20.00")
	maxPrice := decimal.RequireFromString("30.00")
	priced, err := products.FindProducts(c, request.FindProducts{MinPrice: &minPrice, MaxPrice: &maxPrice})
	assert.NoError(t, err)
	assert.Len(t, priced, 1)
	assert.Equal(t, "wireless mouse", priced[0].Name)

	inStock, err := products.FindProducts(c, request.FindProducts{InStock: true})
	assert.NoError(t, err)
	assert.Len(t, inStock, 2)

	searched, err := products.FindProducts(c, request.FindProducts{Search: "KEYBOARD"})
	assert.NoError(t, err)
	assert.Len(t, searched, 1)
	assert.Equal(t, seeded[0].ID, searched[0].ID)
}

func TestFindProductByIdCached(t *testing.T) {
	c := context.Background()
	_, products, categories := newCatalogFixture(t, c)
	_, seeded := seedCatalog(t, c, products, categories)

	found, err := products.FindProductById(c, seeded[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, seeded[0].ID, found.ID)
	assert.True(t, found.IsInStock)

	// Second read is served from the cache.
	cached, err := products.FindProductById(c, seeded[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, found.ID, cached.ID)
	assert.True(t, found.Price.Equal(cached.Price))

	_, err = products.FindProductById(c, uuid.New())
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestFindLowStockProducts(t *testing.T) {
	c := context.Background()
	_, products, categories := newCatalogFixture(t, c)
	seedCatalog(t, c, products, categories)

	low, err := products.FindLowStockProducts(c)
	assert.NoError(t, err)
	assert.Len(t, low, 2)
	for _, product := range low {
		assert.Less(t, product.StockQuantity, int32(LowStockThreshold))
	}
}

func stockDelta(quantityChange int32) request.UpdateStock {
	return request.UpdateStock{QuantityChange: &quantityChange}
}

func TestUpdateStockDelta(t *testing.T) {
	c := context.Background()
	_, products, categories := newCatalogFixture(t, c)
	_, seeded := seedCatalog(t, c, products, categories)

	updated, err := products.UpdateStock(c, seeded[1].ID, stockDelta(5))
	assert.NoError(t, err)
	assert.Equal(t, int32(8), updated.StockQuantity)

	// A zero delta is a valid no-op.
	updated, err = products.UpdateStock(c, seeded[1].ID, stockDelta(0))
	assert.NoError(t, err)
	assert.Equal(t, int32(8), updated.StockQuantity)

	updated, err = products.UpdateStock(c, seeded[1].ID, stockDelta(-8))
	assert.NoError(t, err)
	assert.Equal(t, int32(0), updated.StockQuantity)
	assert.False(t, updated.IsInStock)

	_, err = products.UpdateStock(c, seeded[1].ID, stockDelta(-1))
	assert.ErrorIs(t, err, inErrors.ErrNegativeStock)
	assert.ErrorIs(t, err, inErrors.ErrValidation)

	_, err = products.UpdateStock(c, uuid.New(), stockDelta(1))
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestUpdateProductPartial(t *testing.T) {
	c := context.Background()
	_, products, categories := newCatalogFixture(t, c)
	_, seeded := seedCatalog(t, c, products, categories)

	name := "compact keyboard"
	price := decimal.RequireFromString("79.99")
	updated, err := products.UpdateProduct(c, seeded[0].ID, request.UpdateProduct{
		Name:  &name,
		Price: &price,
	})
	assert.NoError(t, err)
	assert.Equal(t, "compact keyboard", updated.Name)
	assert.True(t, updated.Price.Equal(price))
	assert.Equal(t, seeded[0].StockQuantity, updated.StockQuantity)
	assert.Equal(t, seeded[0].Description, updated.Description)

	_, err = products.UpdateProduct(c, uuid.New(), request.UpdateProduct{Name: &name})
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	c := context.Background()
	_, products, categories := newCatalogFixture(t, c)
	_, seeded := seedCatalog(t, c, products, categories)

	assert.NoError(t, products.DeleteProduct(c, seeded[2].ID))

	_, err := products.FindProductById(c, seeded[2].ID)
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)

	err = products.DeleteProduct(c, seeded[2].ID)
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestCategoryLifecycle(t *testing.T) {
	c := context.Background()
	_, products, categories := newCatalogFixture(t, c)
	category, _ := seedCatalog(t, c, products, categories)

	listed, err := categories.FindCategories(c)
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, int64(3), listed[0].ProductsCount)

	found, err := categories.FindCategoryById(c, category.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), found.ProductsCount)

	updated, err := categories.UpdateCategory(c, category.ID, request.Category{Name: "accessories"})
	assert.NoError(t, err)
	assert.Equal(t, "accessories", updated.Name)
	assert.Equal(t, int64(3), updated.ProductsCount)

	byCategory, err := products.FindProductsByCategoryId(c, category.ID)
	assert.NoError(t, err)
	assert.Len(t, byCategory, 3)

	_, err = products.FindProductsByCategoryId(c, uuid.New())
	assert.ErrorIs(t, err, inErrors.ErrCategoryNotFound)

	assert.NoError(t, categories.DeleteCategory(c, category.ID))
	err = categories.DeleteCategory(c, category.ID)
	assert.ErrorIs(t, err, inErrors.ErrCategoryNotFound)
}

func TestInsertCategoryDuplicateName(t *testing.T) {
	c := context.Background()
	_, _, categories := newCatalogFixture(t, c)

	_, err := categories.InsertCategory(c, request.Category{Name: "peripherals"})
	assert.NoError(t, err)

	_, err = categories.InsertCategory(c, request.Category{Name: "peripherals"})
	assert.ErrorIs(t, err, inErrors.ErrValidation)
}
