package cmd

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arvandy/storefront/internal/repository"
	"github.com/arvandy/storefront/internal/token"
	"github.com/arvandy/storefront/user/internal/controller"
	"github.com/arvandy/storefront/user/internal/service"
)

// AttachUserRoutes wires the auth and profile endpoints. Registration, login
// and refresh go on the public router, the profile ones on the authenticated
// router.
func AttachUserRoutes(
	public, protected *mux.Router,
	pool *pgxpool.Pool,
	queries *repository.Queries,
	issuer token.Issuer,
) {
	controller.AttachUserController(public, protected, service.NewUserService(pool, queries, issuer))
}
