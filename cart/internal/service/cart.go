package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/arvandy/storefront/cart/pkg/request"
	"github.com/arvandy/storefront/cart/pkg/response"
	inErrors "github.com/arvandy/storefront/internal/errors"
	"github.com/arvandy/storefront/internal/log"
	"github.com/arvandy/storefront/internal/otel"
	"github.com/arvandy/storefront/internal/repository"
)

type CartService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
}

func NewCartService(pool *pgxpool.Pool, queries *repository.Queries) CartService {
	return CartService{pool: pool, queries: queries}
}

// GetCart returns the caller's cart with all items expanded and totals
// recomputed. The cart is created lazily when the user has none.
func (s CartService) GetCart(c context.Context, userID uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService GetCart").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	cart, err := s.queries.FindOrCreateCart(c, uuid.New(), userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("found cart")

	return s.cartResponse(c, s.queries, cart)
}

// AddItem adds quantity of a product to the caller's cart. When the product
// is already carted the quantities aggregate into the existing row. The
// resulting quantity is validated against current stock before commit.
func (s CartService) AddItem(
	c context.Context,
	userID uuid.UUID,
	param request.AddCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, param.ProductID.String()).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	defer s.rollback(c, tx, logger)
	qtx := s.queries.WithTx(tx)
	logger.Info().Msg("initialized transaction")

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	cart, err := qtx.FindOrCreateCart(c, uuid.New(), userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	product, err := qtx.FindProductById(c, param.ProductID)
	if err != nil {
		if repository.IsNoRows(err) {
			err = inErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding productId=%s with error=%w", param.ProductID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "merging quantity").Logger()
	logger.Info().Msg("merging quantity with existing cart item")
	resulting := param.Quantity
	existing, err := qtx.FindCartItemByCartAndProduct(c, cart.ID, param.ProductID)
	if err != nil && !repository.IsNoRows(err) {
		err = fmt.Errorf("failed finding cart item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if err == nil {
		resulting += existing.Quantity
	}
	logger = logger.With().Int32("resultingQuantity", resulting).Logger()
	logger.Info().Msg("merged quantity with existing cart item")

	if resulting > product.StockQuantity {
		err = fmt.Errorf(
			"requested quantity=%d exceeds stock=%d with error=%w",
			resulting,
			product.StockQuantity,
			inErrors.ErrInsufficientStock,
		)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "upserting cart item").Logger()
	logger.Info().Msg("upserting cart item")
	_, err = qtx.UpsertCartItem(c, repository.UpsertCartItemParams{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: param.ProductID,
		Quantity:  resulting,
	})
	if err != nil {
		err = fmt.Errorf("failed upserting cart item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if err = qtx.TouchCart(c, cart.ID); err != nil {
		err = fmt.Errorf("failed touching cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("upserted cart item")

	logger = logger.With().Str(log.KeyProcess, "mapping cart").Logger()
	logger.Info().Msg("mapping cart")
	cartResponse, err := s.cartResponse(c, qtx, cart)
	if err != nil {
		return response.Cart{}, err
	}
	logger.Info().Msg("mapped cart")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("committed transaction")

	return cartResponse, nil
}

// UpdateItem replaces the stored quantity of a cart item owned by the
// caller. A foreign or missing item yields not found.
func (s CartService) UpdateItem(
	c context.Context,
	userID, itemID uuid.UUID,
	param request.UpdateCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyCartItemID, itemID.String()).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	defer s.rollback(c, tx, logger)
	qtx := s.queries.WithTx(tx)
	logger.Info().Msg("initialized transaction")

	logger = logger.With().Str(log.KeyProcess, "finding cart item").Logger()
	logger.Info().Msg("finding cart item")
	item, err := qtx.FindCartItemByIdAndUserId(c, itemID, userID)
	if err != nil {
		if repository.IsNoRows(err) {
			err = inErrors.ErrCartItemNotFound
		}
		err = fmt.Errorf("failed finding cartItemId=%s with error=%w", itemID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart item")

	logger = logger.With().Str(log.KeyProcess, "checking stock").Logger()
	logger.Info().Msg("checking stock")
	product, err := qtx.FindProductById(c, item.ProductID)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%s with error=%w", item.ProductID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if param.Quantity > product.StockQuantity {
		err = fmt.Errorf(
			"requested quantity=%d exceeds stock=%d with error=%w",
			param.Quantity,
			product.StockQuantity,
			inErrors.ErrInsufficientStock,
		)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("checked stock")

	logger = logger.With().Str(log.KeyProcess, "updating cart item").Logger()
	logger.Info().Msg("updating cart item")
	if _, err = qtx.UpdateCartItemQuantity(c, itemID, param.Quantity); err != nil {
		err = fmt.Errorf("failed updating cart item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if err = qtx.TouchCart(c, item.CartID); err != nil {
		err = fmt.Errorf("failed touching cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("updated cart item")

	cart, err := qtx.FindCartByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	cartResponse, err := s.cartResponse(c, qtx, cart)
	if err != nil {
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("committed transaction")

	return cartResponse, nil
}

// RemoveItem deletes a cart item owned by the caller.
func (s CartService) RemoveItem(c context.Context, userID, itemID uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyCartItemID, itemID.String()).
		Str(log.KeyProcess, "deleting cart item").
		Logger()

	logger.Info().Msg("deleting cart item")
	affected, err := s.queries.DeleteCartItemByIdAndUserId(c, itemID, userID)
	if err != nil {
		err = fmt.Errorf("failed deleting cartItemId=%s with error=%w", itemID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if affected == 0 {
		err = fmt.Errorf("cartItemId=%s with error=%w", itemID.String(), inErrors.ErrCartItemNotFound)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted cart item")

	return nil
}

// ClearCart removes every item from the caller's cart. Clearing an empty
// cart succeeds.
func (s CartService) ClearCart(c context.Context, userID uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	cart, err := s.queries.FindOrCreateCart(c, uuid.New(), userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	if err = s.queries.DeleteCartItemsByCartId(c, cart.ID); err != nil {
		err = fmt.Errorf("failed clearing cartId=%s with error=%w", cart.ID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err = s.queries.TouchCart(c, cart.ID); err != nil {
		err = fmt.Errorf("failed touching cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("cleared cart")

	return nil
}

func (s CartService) cartResponse(
	c context.Context,
	queries *repository.Queries,
	cart repository.Cart,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService cartResponse")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService cartResponse").
		Str(log.KeyCartID, cart.ID.String()).
		Str(log.KeyProcess, "finding cart items").
		Logger()

	logger.Info().Msg("finding cart items")
	rows, err := queries.FindCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("found %d cart items", len(rows))

	items := make([]response.CartItem, len(rows))
	for i, row := range rows {
		items[i] = row.Response()
	}
	return response.NewCart(cart.ID, cart.UserID, cart.CreatedAt.Time, cart.UpdatedAt.Time, items), nil
}

func (s CartService) rollback(c context.Context, tx pgx.Tx, logger zerolog.Logger) {
	if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		err = fmt.Errorf("failed rolling back transaction with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
	}
}
