package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inHttp "github.com/arvandy/storefront/internal/http"
	"github.com/arvandy/storefront/internal/log"
	"github.com/arvandy/storefront/internal/otel"
	"github.com/arvandy/storefront/internal/token"
	"github.com/arvandy/storefront/internal/validate"
	"github.com/arvandy/storefront/wishlist/internal/service"
	"github.com/arvandy/storefront/wishlist/pkg/request"
)

type WishlistController struct {
	service  service.WishlistService
	validate *validator.Validate
}

func AttachWishlistController(router *mux.Router, service service.WishlistService) {
	controller := WishlistController{service: service, validate: validate.New()}

	router.HandleFunc("/wishlist", controller.FindWishlist).Methods(http.MethodGet)
	router.HandleFunc("/wishlist", controller.AddItem).Methods(http.MethodPost)
	router.HandleFunc("/wishlist/product/{productId}", controller.RemoveItemByProduct).
		Methods(http.MethodDelete)
	router.HandleFunc("/wishlist/{wishlistItemId}", controller.RemoveItem).
		Methods(http.MethodDelete)
}

func (t WishlistController) FindWishlist(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "WishlistController FindWishlist")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistController FindWishlist").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting userId from token").Logger()
	userId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding wishlist").Logger()
	logger.Info().Msg("finding wishlist")
	c = logger.WithContext(c)
	items, err := t.service.FindWishlist(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding wishlist with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msgf("found %d wishlist items", len(items))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found wishlist",
		"data": map[string]interface{}{
			"wishlist": items,
		},
	})
}

func (t WishlistController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "WishlistController AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistController AddItem").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.AddWishlistItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	if err := t.validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "getting userId from token").Logger()
	userId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "adding wishlist item").Logger()
	logger.Info().Msg("adding wishlist item")
	c = logger.WithContext(c)
	items, err := t.service.AddItem(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed adding wishlist item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("added wishlist item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "added wishlist item",
		"data": map[string]interface{}{
			"wishlist": items,
		},
	})
}

func (t WishlistController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "WishlistController RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistController RemoveItem").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating wishlistItemId").Logger()
	logger.Info().Msg("validating wishlistItemId")
	wishlistItemId, err := uuid.Parse(mux.Vars(r)["wishlistItemId"])
	if err != nil {
		err = fmt.Errorf("failed validating wishlistItemId with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyWishlistID, wishlistItemId.String()).Logger()
	logger.Info().Msgf("validated wishlistItemId=%s", wishlistItemId.String())

	logger = logger.With().Str(log.KeyProcess, "getting userId from token").Logger()
	userId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "removing wishlist item").Logger()
	logger.Info().Msg("removing wishlist item")
	c = logger.WithContext(c)
	if err := t.service.RemoveItemById(c, userId, wishlistItemId); err != nil {
		err = fmt.Errorf(
			"failed removing wishlistItemId=%s with error=%w",
			wishlistItemId.String(),
			err,
		)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("removed wishlist item")

	w.WriteHeader(http.StatusNoContent)
}

func (t WishlistController) RemoveItemByProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "WishlistController RemoveItemByProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistController RemoveItemByProduct").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating productId").Logger()
	logger.Info().Msg("validating productId")
	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		err = fmt.Errorf("failed validating productId with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyProductID, productId.String()).Logger()
	logger.Info().Msgf("validated productId=%s", productId.String())

	logger = logger.With().Str(log.KeyProcess, "getting userId from token").Logger()
	userId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "removing wishlist item").Logger()
	logger.Info().Msg("removing wishlist item")
	c = logger.WithContext(c)
	if err := t.service.RemoveItemByProduct(c, userId, productId); err != nil {
		err = fmt.Errorf(
			"failed removing wishlist item of productId=%s with error=%w",
			productId.String(),
			err,
		)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("removed wishlist item")

	w.WriteHeader(http.StatusNoContent)
}
