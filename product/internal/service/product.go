package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	inErrors "github.com/arvandy/storefront/internal/errors"
	"github.com/arvandy/storefront/internal/log"
	"github.com/arvandy/storefront/internal/otel"
	"github.com/arvandy/storefront/internal/repository"
	"github.com/arvandy/storefront/product/internal/cache"
	"github.com/arvandy/storefront/product/pkg/request"
	"github.com/arvandy/storefront/product/pkg/response"
)

// LowStockThreshold bounds the staff low-stock report.
const LowStockThreshold = 10

type ProductService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewProductService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) ProductService {
	return ProductService{pool: pool, queries: queries, cache: cache}
}

func (s ProductService) InsertProduct(
	c context.Context,
	param request.Product,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Str(log.KeyCategoryID, param.CategoryID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	logger.Info().Msg("inserting product")
	product, err := s.queries.InsertProduct(c, repository.InsertProductParams{
		ID:            uuid.New(),
		Name:          param.Name,
		Description:   param.Description,
		Price:         repository.NumericFromDecimal(param.Price),
		StockQuantity: param.StockQuantity,
		ImageUrl:      textFromString(param.ImageUrl),
		CategoryID:    param.CategoryID,
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			err = inErrors.ErrCategoryNotFound
		} else {
			err = fmt.Errorf("failed inserting product with error=%w", err)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger = logger.With().Str(log.KeyProductID, product.ID.String()).Logger()
	logger.Info().Msg("inserted product")

	return product.Response(), nil
}

func (s ProductService) FindProducts(
	c context.Context,
	param request.FindProducts,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeyProcess, "finding products").
		Logger()

	logger.Info().Msg("finding products")
	products, err := s.queries.FindProducts(c, repository.FindProductsParams{
		CategoryID: param.CategoryID,
		MinPrice:   numericFromPtr(param.MinPrice),
		MaxPrice:   numericFromPtr(param.MaxPrice),
		InStock:    param.InStock,
		Search:     param.Search,
	})
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products", len(products))

	return mapProducts(products), nil
}

// FindProductById serves from the cache when possible and repopulates it on
// a miss.
func (s ProductService) FindProductById(
	c context.Context,
	id uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	key := fmt.Sprintf(cache.KeyProduct, id.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyCacheKey, key).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Info().Msg("finding product in cache")
	cached, err := s.cache.Get(c, key).Result()
	if err == nil {
		product := response.Product{}
		if err = json.Unmarshal([]byte(cached), &product); err == nil {
			logger.Info().Msg("found product in cache")
			return product, nil
		}
		logger.Info().Err(err).Msg("failed unmarshaling cached product")
	} else if !errors.Is(err, redis.Nil) {
		logger.Info().Err(err).Msg("failed finding product in cache")
	}
	logger.Info().Msg("product not in cache")

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Info().Msg("finding product in database")
	product, err := s.queries.FindProductById(c, id)
	if err != nil {
		if repository.IsNoRows(err) {
			err = inErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding productId=%s with error=%w", id.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("found product in database")

	logger = logger.With().Str(log.KeyProcess, "caching product").Logger()
	logger.Info().Msg("caching product")
	mapped := product.Response()
	if encoded, err := json.Marshal(mapped); err == nil {
		if err = s.cache.Set(c, key, encoded, cache.TTL).Err(); err != nil {
			logger.Info().Err(err).Msg("failed caching product")
		} else {
			logger.Info().Msg("cached product")
		}
	}

	return mapped, nil
}

func (s ProductService) FindProductsByCategoryId(
	c context.Context,
	categoryID uuid.UUID,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductsByCategoryId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductsByCategoryId").
		Str(log.KeyCategoryID, categoryID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding category").Logger()
	logger.Info().Msg("finding category")
	if _, err := s.queries.FindCategoryById(c, categoryID); err != nil {
		if repository.IsNoRows(err) {
			err = inErrors.ErrCategoryNotFound
		}
		err = fmt.Errorf("failed finding categoryId=%s with error=%w", categoryID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("found category")

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	logger.Info().Msg("finding products")
	products, err := s.queries.FindProductsByCategoryId(c, categoryID)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products", len(products))

	return mapProducts(products), nil
}

func (s ProductService) FindLowStockProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindLowStockProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindLowStockProducts").
		Str(log.KeyProcess, "finding low stock products").
		Logger()

	logger.Info().Msg("finding low stock products")
	products, err := s.queries.FindLowStockProducts(c, LowStockThreshold)
	if err != nil {
		err = fmt.Errorf("failed finding low stock products with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d low stock products", len(products))

	return mapProducts(products), nil
}

func (s ProductService) UpdateProduct(
	c context.Context,
	id uuid.UUID,
	param request.UpdateProduct,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProduct").
		Str(log.KeyProductID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "updating product").Logger()
	logger.Info().Msg("updating product")
	price := pgtype.Numeric{}
	if param.Price != nil {
		price = repository.NumericFromDecimal(*param.Price)
	}
	stock := pgtype.Int4{}
	if param.StockQuantity != nil {
		stock = pgtype.Int4{Int32: *param.StockQuantity, Valid: true}
	}
	product, err := s.queries.UpdateProduct(c, repository.UpdateProductParams{
		ID:            id,
		Name:          textFromPtr(param.Name),
		Description:   textFromPtr(param.Description),
		Price:         price,
		StockQuantity: stock,
		ImageUrl:      textFromPtr(param.ImageUrl),
		CategoryID:    param.CategoryID,
	})
	if err != nil {
		switch {
		case repository.IsNoRows(err):
			err = inErrors.ErrProductNotFound
		case repository.IsForeignKeyViolation(err):
			err = inErrors.ErrCategoryNotFound
		default:
			err = fmt.Errorf("failed updating productId=%s with error=%w", id.String(), err)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("updated product")

	s.invalidate(c, logger, id)

	return product.Response(), nil
}

// UpdateStock applies a signed stock delta; the resulting quantity may not
// go negative.
func (s ProductService) UpdateStock(
	c context.Context,
	id uuid.UUID,
	param request.UpdateStock,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateStock")
	defer span.End()

	var delta int32
	if param.QuantityChange != nil {
		delta = *param.QuantityChange
	}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateStock").
		Str(log.KeyProductID, id.String()).
		Int32("quantityChange", delta).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	defer func() {
		if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Error().Err(err).Msg("failed rolling back transaction")
		}
	}()
	qtx := s.queries.WithTx(tx)
	logger.Info().Msg("initialized transaction")

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	product, err := qtx.FindProductById(c, id)
	if err != nil {
		if repository.IsNoRows(err) {
			err = inErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding productId=%s with error=%w", id.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("found product")

	resulting := product.StockQuantity + delta
	if resulting < 0 {
		err = fmt.Errorf(
			"stock=%d with change=%d with error=%w",
			product.StockQuantity,
			delta,
			inErrors.ErrNegativeStock,
		)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating stock").Logger()
	logger.Info().Msg("updating stock")
	product, err = qtx.UpdateProductStock(c, id, resulting)
	if err != nil {
		err = fmt.Errorf("failed updating stock with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("updated stock")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("committed transaction")

	s.invalidate(c, logger, id)

	return product.Response(), nil
}

func (s ProductService) DeleteProduct(c context.Context, id uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "ProductService DeleteProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService DeleteProduct").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyProcess, "deleting product").
		Logger()

	logger.Info().Msg("deleting product")
	affected, err := s.queries.DeleteProduct(c, id)
	if err != nil {
		err = fmt.Errorf("failed deleting productId=%s with error=%w", id.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if affected == 0 {
		err = fmt.Errorf("productId=%s with error=%w", id.String(), inErrors.ErrProductNotFound)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted product")

	s.invalidate(c, logger, id)

	return nil
}

func (s ProductService) invalidate(c context.Context, logger zerolog.Logger, id uuid.UUID) {
	key := fmt.Sprintf(cache.KeyProduct, id.String())
	if err := s.cache.Del(c, key).Err(); err != nil {
		logger.Info().Err(err).Str(log.KeyCacheKey, key).Msg("failed invalidating cached product")
	}
}

func mapProducts(products []repository.Product) []response.Product {
	mapped := make([]response.Product, len(products))
	for i, product := range products {
		mapped[i] = product.Response()
	}
	return mapped
}

func textFromString(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func textFromPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func numericFromPtr(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}
	return repository.NumericFromDecimal(*d)
}
