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
	"github.com/arvandy/storefront/internal/validate"
	"github.com/arvandy/storefront/product/internal/service"
	"github.com/arvandy/storefront/product/pkg/request"
)

type CategoryController struct {
	categories service.CategoryService
	products   service.ProductService
	validate   *validator.Validate
}

func AttachCategoryController(
	public, staff *mux.Router,
	categories service.CategoryService,
	products service.ProductService,
) {
	controller := CategoryController{
		categories: categories,
		products:   products,
		validate:   validate.New(),
	}

	public.HandleFunc("/categories", controller.FindCategories).Methods(http.MethodGet)
	public.HandleFunc("/categories/{categoryId}", controller.FindCategoryById).
		Methods(http.MethodGet)
	public.HandleFunc("/categories/{categoryId}/products", controller.FindCategoryProducts).
		Methods(http.MethodGet)

	staff.HandleFunc("/categories", controller.InsertCategory).Methods(http.MethodPost)
	staff.HandleFunc("/categories/{categoryId}", controller.UpdateCategory).
		Methods(http.MethodPut)
	staff.HandleFunc("/categories/{categoryId}", controller.DeleteCategory).
		Methods(http.MethodDelete)
}

func (t CategoryController) InsertCategory(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController InsertCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryController InsertCategory").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.Category{}
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

	logger = logger.With().Str(log.KeyProcess, "inserting category").Logger()
	logger.Info().Msg("inserting category")
	c = logger.WithContext(c)
	category, err := t.categories.InsertCategory(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting category with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("inserted category")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "inserted category",
		"data": map[string]interface{}{
			"category": category,
		},
	})
}

func (t CategoryController) FindCategories(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryController FindCategories").
		Str(log.KeyProcess, "finding categories").
		Logger()

	logger.Info().Msg("finding categories")
	c = logger.WithContext(c)
	categories, err := t.categories.FindCategories(c)
	if err != nil {
		err = fmt.Errorf("failed finding categories with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msgf("found %d categories", len(categories))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found categories",
		"data": map[string]interface{}{
			"categories": categories,
		},
	})
}

func (t CategoryController) FindCategoryById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController FindCategoryById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryController FindCategoryById").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating categoryId").Logger()
	logger.Info().Msg("validating categoryId")
	categoryId, err := uuid.Parse(mux.Vars(r)["categoryId"])
	if err != nil {
		err = fmt.Errorf("failed validating categoryId with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyCategoryID, categoryId.String()).Logger()
	logger.Info().Msgf("validated categoryId=%s", categoryId.String())

	logger = logger.With().Str(log.KeyProcess, "finding category").Logger()
	logger.Info().Msg("finding category")
	c = logger.WithContext(c)
	category, err := t.categories.FindCategoryById(c, categoryId)
	if err != nil {
		err = fmt.Errorf("failed finding categoryId=%s with error=%w", categoryId.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found category")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("found categoryId=%s", categoryId.String()),
		"data": map[string]interface{}{
			"category": category,
		},
	})
}

func (t CategoryController) FindCategoryProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController FindCategoryProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryController FindCategoryProducts").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating categoryId").Logger()
	logger.Info().Msg("validating categoryId")
	categoryId, err := uuid.Parse(mux.Vars(r)["categoryId"])
	if err != nil {
		err = fmt.Errorf("failed validating categoryId with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyCategoryID, categoryId.String()).Logger()
	logger.Info().Msgf("validated categoryId=%s", categoryId.String())

	logger = logger.With().Str(log.KeyProcess, "finding category products").Logger()
	logger.Info().Msg("finding category products")
	c = logger.WithContext(c)
	products, err := t.products.FindProductsByCategoryId(c, categoryId)
	if err != nil {
		err = fmt.Errorf(
			"failed finding products of categoryId=%s with error=%w",
			categoryId.String(),
			err,
		)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msgf("found %d products", len(products))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("found products of categoryId=%s", categoryId.String()),
		"data": map[string]interface{}{
			"products": products,
		},
	})
}

func (t CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController UpdateCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryController UpdateCategory").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating categoryId").Logger()
	logger.Info().Msg("validating categoryId")
	categoryId, err := uuid.Parse(mux.Vars(r)["categoryId"])
	if err != nil {
		err = fmt.Errorf("failed validating categoryId with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyCategoryID, categoryId.String()).Logger()
	logger.Info().Msgf("validated categoryId=%s", categoryId.String())

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.Category{}
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

	logger = logger.With().Str(log.KeyProcess, "updating category").Logger()
	logger.Info().Msg("updating category")
	c = logger.WithContext(c)
	category, err := t.categories.UpdateCategory(c, categoryId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating categoryId=%s with error=%w", categoryId.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("updated category")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("updated categoryId=%s", categoryId.String()),
		"data": map[string]interface{}{
			"category": category,
		},
	})
}

func (t CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController DeleteCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryController DeleteCategory").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating categoryId").Logger()
	logger.Info().Msg("validating categoryId")
	categoryId, err := uuid.Parse(mux.Vars(r)["categoryId"])
	if err != nil {
		err = fmt.Errorf("failed validating categoryId with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyCategoryID, categoryId.String()).Logger()
	logger.Info().Msgf("validated categoryId=%s", categoryId.String())

	logger = logger.With().Str(log.KeyProcess, "deleting category").Logger()
	logger.Info().Msg("deleting category")
	c = logger.WithContext(c)
	if err := t.categories.DeleteCategory(c, categoryId); err != nil {
		err = fmt.Errorf("failed deleting categoryId=%s with error=%w", categoryId.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("deleted category")

	w.WriteHeader(http.StatusNoContent)
}
