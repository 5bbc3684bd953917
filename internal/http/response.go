package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	inErrors "github.com/arvandy/storefront/internal/errors"
	"github.com/arvandy/storefront/internal/otel"
)

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	c, span := otel.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str("tag", "WriteJsonResponse").Logger()

	w.Header().Add(HeaderContentType, ValueJson)
	for k, v := range header {
		w.Header().Add(k, v)
	}
	if v, ok := body["statusCode"]; ok {
		w.WriteHeader(v.(int))
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
}

// WriteErrorResponse maps the error taxonomy onto the contractual status
// codes: validation 400, authentication 401, authorization 403, absence 404,
// everything else 500.
func WriteErrorResponse(c context.Context, w http.ResponseWriter, err error) {
	WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "failed",
		"statusCode": StatusCodeFromError(err),
		"message":    err.Error(),
	})
}

func StatusCodeFromError(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, inErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, inErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, inErrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, inErrors.ErrValidation), errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
