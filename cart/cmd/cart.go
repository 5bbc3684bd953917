package cmd

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arvandy/storefront/cart/internal/controller"
	"github.com/arvandy/storefront/cart/internal/service"
	"github.com/arvandy/storefront/internal/repository"
)

// AttachCartRoutes wires the cart endpoints onto the authenticated router.
func AttachCartRoutes(protected *mux.Router, pool *pgxpool.Pool, queries *repository.Queries) {
	controller.AttachCartController(protected, service.NewCartService(pool, queries))
}
