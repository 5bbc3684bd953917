package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	cartCmd "github.com/arvandy/storefront/cart/cmd"
	"github.com/arvandy/storefront/internal/config"
	"github.com/arvandy/storefront/internal/constants"
	"github.com/arvandy/storefront/internal/infra"
	"github.com/arvandy/storefront/internal/log"
	"github.com/arvandy/storefront/internal/middleware"
	"github.com/arvandy/storefront/internal/otel"
	"github.com/arvandy/storefront/internal/repository"
	"github.com/arvandy/storefront/internal/token"
	productCmd "github.com/arvandy/storefront/product/cmd"
	userCmd "github.com/arvandy/storefront/user/cmd"
	wishlistCmd "github.com/arvandy/storefront/wishlist/cmd"
)

// newApiRouter assembles the full route table. Public catalog and auth
// endpoints live under /api, the rest behind the auth middleware, catalog
// mutations behind the staff check.
func newApiRouter(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
	issuer token.Issuer,
) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(
		otelmux.Middleware(constants.AppName),
		middleware.Logging,
		middleware.Metrics,
		middleware.RecoverPanic,
	)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(issuer))
	staff := api.NewRoute().Subrouter()
	staff.Use(middleware.Auth(issuer), middleware.Staff)

	userCmd.AttachUserRoutes(api, protected, pool, queries, issuer)
	productCmd.AttachCatalogRoutes(api, staff, pool, queries, cache)
	cartCmd.AttachCartRoutes(protected, pool, queries)
	wishlistCmd.AttachWishlistRoutes(protected, queries)

	return router
}

func RunApiServer(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main RunApiServer").
		Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	cfg := config.InitConfig(c, constants.AppName)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "init otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	otelShutdowns, err := otel.InitOtelSdk(c, constants.AppName, cfg.Otel)
	if err != nil {
		logger.Error().Err(err).Msgf("failed initializing otel sdk with error=%s", err.Error())
	}
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "init database").Logger()
	logger.Info().Msg("initializing database")
	pool := infra.NewDatabaseClient(c, cfg.Database)
	defer pool.Close()
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(log.KeyProcess, "init cache").Logger()
	logger.Info().Msg("initializing cache")
	cache := infra.NewCacheClient(c, cfg.Cache)
	logger.Info().Msg("initialized cache")

	logger = logger.With().Str(log.KeyProcess, "init router").Logger()
	logger.Info().Msg("initializing router")
	queries := repository.New(pool)
	issuer := token.NewIssuer(cfg.Token)
	router := newApiRouter(pool, queries, cache, issuer)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(log.KeyProcess, "start server").Logger()
	logger.Info().Msg("initializing server")
	server := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Msg("initialized server")

	go func() {
		logger.Info().Msgf("start listening request at %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msgf("error=%s occured while server is running", err.Error())
		}
	}()

	<-c.Done()
	logger = logger.With().Str(log.KeyProcess, "shutdown server").Logger()
	logger.Info().Msg("received interruption signal shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	shutdownCtx = logger.WithContext(shutdownCtx)

	logger.Info().Msg("shutting down http server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msgf("failed shutting down http server with error=%s", err.Error())
	}
	logger.Info().Msg("shutdown http server")

	logger.Info().Msg("shutting down otel")
	if err := otel.ShutdownOtel(shutdownCtx, otelShutdowns); err != nil {
		logger.Error().Err(err).Msgf("failed shutting down otel with error=%s", err.Error())
	}
	logger.Info().Msg("shutdown otel")

	logger.Info().Msg("shutting down cache")
	if err := cache.Close(); err != nil {
		logger.Error().Err(err).Msgf("failed shutting down cache with error=%s", err.Error())
	}
	logger.Info().Msg("shutdown cache")
}
