package cmd

import (
	"github.com/gorilla/mux"

	"github.com/arvandy/storefront/internal/repository"
	"github.com/arvandy/storefront/wishlist/internal/controller"
	"github.com/arvandy/storefront/wishlist/internal/service"
)

// AttachWishlistRoutes wires the wishlist endpoints onto the authenticated
// router.
func AttachWishlistRoutes(protected *mux.Router, queries *repository.Queries) {
	controller.AttachWishlistController(protected, service.NewWishlistService(queries))
}
