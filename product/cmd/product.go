package cmd

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/arvandy/storefront/internal/repository"
	"github.com/arvandy/storefront/product/internal/controller"
	"github.com/arvandy/storefront/product/internal/service"
)

// AttachCatalogRoutes wires the product and category endpoints. Reads go on
// the public router, mutations and the low stock report on the staff router.
func AttachCatalogRoutes(
	public, staff *mux.Router,
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) {
	products := service.NewProductService(pool, queries, cache)
	categories := service.NewCategoryService(queries, cache)
	controller.AttachProductController(public, staff, products)
	controller.AttachCategoryController(public, staff, categories, products)
}
