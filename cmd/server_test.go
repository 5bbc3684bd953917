package cmd

import (
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/arvandy/storefront/internal/config"
	"github.com/arvandy/storefront/internal/repository"
	"github.com/arvandy/storefront/internal/token"
)

func TestNewApiRouterRouteTable(t *testing.T) {
	issuer := token.NewIssuer(config.Token{
		SecretKey:  "route-table-test",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
	router := newApiRouter(nil, repository.New(nil), redis.NewClient(&redis.Options{}), issuer)

	registered := map[string]bool{}
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		template, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		for _, method := range methods {
			registered[method+" "+template] = true
		}
		return nil
	})
	assert.NoError(t, err)

	expected := []string{
		"GET /metrics",
		"POST /api/auth/register",
		"POST /api/auth/token",
		"POST /api/auth/token/refresh",
		"GET /api/auth/profile",
		"PATCH /api/auth/profile",
		"PUT /api/auth/password/change",
		"GET /api/products",
		"GET /api/products/{productId}",
		"GET /api/products/low_stock",
		"POST /api/products",
		"PUT /api/products/{productId}",
		"PATCH /api/products/{productId}",
		"DELETE /api/products/{productId}",
		"POST /api/products/{productId}/update_stock",
		"GET /api/categories",
		"GET /api/categories/{categoryId}",
		"GET /api/categories/{categoryId}/products",
		"POST /api/categories",
		"PUT /api/categories/{categoryId}",
		"DELETE /api/categories/{categoryId}",
		"GET /api/cart",
		"POST /api/cart",
		"PUT /api/cart/items/{cartItemId}",
		"DELETE /api/cart/items/{cartItemId}",
		"DELETE /api/cart/clear",
		"GET /api/wishlist",
		"POST /api/wishlist",
		"DELETE /api/wishlist/{wishlistItemId}",
		"DELETE /api/wishlist/product/{productId}",
	}
	for _, route := range expected {
		assert.Truef(t, registered[route], "route %q is not registered", route)
	}
}
