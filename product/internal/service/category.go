package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inErrors "github.com/arvandy/storefront/internal/errors"
	"github.com/arvandy/storefront/internal/log"
	"github.com/arvandy/storefront/internal/otel"
	"github.com/arvandy/storefront/internal/repository"
	"github.com/arvandy/storefront/product/internal/cache"
	"github.com/arvandy/storefront/product/pkg/request"
	"github.com/arvandy/storefront/product/pkg/response"
)

type CategoryService struct {
	queries *repository.Queries
	cache   *redis.Client
}

func NewCategoryService(queries *repository.Queries, cache *redis.Client) CategoryService {
	return CategoryService{queries: queries, cache: cache}
}

func (s CategoryService) InsertCategory(
	c context.Context,
	param request.Category,
) (response.Category, error) {
	c, span := otel.Tracer.Start(c, "CategoryService InsertCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryService InsertCategory").
		Str("name", param.Name).
		Str(log.KeyProcess, "inserting category").
		Logger()

	logger.Info().Msg("inserting category")
	category, err := s.queries.InsertCategory(c, uuid.New(), param.Name)
	if err != nil {
		if repository.IsUniqueViolation(err, "categories_name_key") {
			err = fmt.Errorf("name=%s already exists with error=%w", param.Name, inErrors.ErrValidation)
		} else {
			err = fmt.Errorf("failed inserting category with error=%w", err)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	logger.Info().Msg("inserted category")

	s.invalidate(c, logger)

	return response.Category{ID: category.ID, Name: category.Name}, nil
}

// FindCategories serves the category listing, with product counts, from the
// cache when possible.
func (s CategoryService) FindCategories(c context.Context) ([]response.Category, error) {
	c, span := otel.Tracer.Start(c, "CategoryService FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryService FindCategories").
		Str(log.KeyCacheKey, cache.KeyCategories).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding categories in cache").Logger()
	logger.Info().Msg("finding categories in cache")
	cached, err := s.cache.Get(c, cache.KeyCategories).Result()
	if err == nil {
		categories := []response.Category{}
		if err = json.Unmarshal([]byte(cached), &categories); err == nil {
			logger.Info().Msg("found categories in cache")
			return categories, nil
		}
		logger.Info().Err(err).Msg("failed unmarshaling cached categories")
	} else if !errors.Is(err, redis.Nil) {
		logger.Info().Err(err).Msg("failed finding categories in cache")
	}
	logger.Info().Msg("categories not in cache")

	logger = logger.With().Str(log.KeyProcess, "finding categories in database").Logger()
	logger.Info().Msg("finding categories in database")
	rows, err := s.queries.FindCategories(c)
	if err != nil {
		err = fmt.Errorf("failed finding categories with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d categories", len(rows))

	categories := make([]response.Category, len(rows))
	for i, row := range rows {
		categories[i] = row.Response()
	}

	logger = logger.With().Str(log.KeyProcess, "caching categories").Logger()
	if encoded, err := json.Marshal(categories); err == nil {
		if err = s.cache.Set(c, cache.KeyCategories, encoded, cache.TTL).Err(); err != nil {
			logger.Info().Err(err).Msg("failed caching categories")
		} else {
			logger.Info().Msg("cached categories")
		}
	}

	return categories, nil
}

func (s CategoryService) FindCategoryById(
	c context.Context,
	id uuid.UUID,
) (response.Category, error) {
	c, span := otel.Tracer.Start(c, "CategoryService FindCategoryById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryService FindCategoryById").
		Str(log.KeyCategoryID, id.String()).
		Str(log.KeyProcess, "finding category").
		Logger()

	logger.Info().Msg("finding category")
	row, err := s.queries.FindCategoryById(c, id)
	if err != nil {
		if repository.IsNoRows(err) {
			err = inErrors.ErrCategoryNotFound
		}
		err = fmt.Errorf("failed finding categoryId=%s with error=%w", id.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	logger.Info().Msg("found category")

	return row.Response(), nil
}

func (s CategoryService) UpdateCategory(
	c context.Context,
	id uuid.UUID,
	param request.Category,
) (response.Category, error) {
	c, span := otel.Tracer.Start(c, "CategoryService UpdateCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryService UpdateCategory").
		Str(log.KeyCategoryID, id.String()).
		Str(log.KeyProcess, "updating category").
		Logger()

	logger.Info().Msg("updating category")
	category, err := s.queries.UpdateCategory(c, id, param.Name)
	if err != nil {
		switch {
		case repository.IsNoRows(err):
			err = inErrors.ErrCategoryNotFound
		case repository.IsUniqueViolation(err, "categories_name_key"):
			err = fmt.Errorf("name=%s already exists with error=%w", param.Name, inErrors.ErrValidation)
		default:
			err = fmt.Errorf("failed updating categoryId=%s with error=%w", id.String(), err)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	logger.Info().Msg("updated category")

	s.invalidate(c, logger)

	row, err := s.queries.FindCategoryById(c, category.ID)
	if err != nil {
		err = fmt.Errorf("failed finding categoryId=%s with error=%w", category.ID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	return row.Response(), nil
}

func (s CategoryService) DeleteCategory(c context.Context, id uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CategoryService DeleteCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryService DeleteCategory").
		Str(log.KeyCategoryID, id.String()).
		Str(log.KeyProcess, "deleting category").
		Logger()

	logger.Info().Msg("deleting category")
	affected, err := s.queries.DeleteCategory(c, id)
	if err != nil {
		err = fmt.Errorf("failed deleting categoryId=%s with error=%w", id.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if affected == 0 {
		err = fmt.Errorf("categoryId=%s with error=%w", id.String(), inErrors.ErrCategoryNotFound)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted category")

	s.invalidate(c, logger)

	return nil
}

func (s CategoryService) invalidate(c context.Context, logger zerolog.Logger) {
	if err := s.cache.Del(c, cache.KeyCategories).Err(); err != nil {
		logger.Info().Err(err).Msg("failed invalidating cached categories")
	}
}
