package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	inErrors "github.com/arvandy/storefront/internal/errors"
	"github.com/arvandy/storefront/internal/log"
	"github.com/arvandy/storefront/internal/otel"
	"github.com/arvandy/storefront/internal/repository"
	"github.com/arvandy/storefront/wishlist/pkg/request"
	"github.com/arvandy/storefront/wishlist/pkg/response"
)

type WishlistService struct {
	queries *repository.Queries
}

func NewWishlistService(queries *repository.Queries) WishlistService {
	return WishlistService{queries: queries}
}

func (s WishlistService) FindWishlist(
	c context.Context,
	userID uuid.UUID,
) ([]response.WishlistItem, error) {
	c, span := otel.Tracer.Start(c, "WishlistService FindWishlist")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService FindWishlist").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProcess, "finding wishlist").
		Logger()

	logger.Info().Msg("finding wishlist")
	rows, err := s.queries.FindWishlistByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding wishlist with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d wishlist items", len(rows))

	items := make([]response.WishlistItem, len(rows))
	for i, row := range rows {
		items[i] = row.Response()
	}
	return items, nil
}

// AddItem pins a product on the caller's wishlist. A product may appear at
// most once per user.
func (s WishlistService) AddItem(
	c context.Context,
	userID uuid.UUID,
	param request.AddWishlistItem,
) ([]response.WishlistItem, error) {
	c, span := otel.Tracer.Start(c, "WishlistService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService AddItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, param.ProductID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	if _, err := s.queries.FindProductById(c, param.ProductID); err != nil {
		if repository.IsNoRows(err) {
			err = inErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding productId=%s with error=%w", param.ProductID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "inserting wishlist item").Logger()
	logger.Info().Msg("inserting wishlist item")
	item, err := s.queries.InsertWishlistItem(c, repository.InsertWishlistItemParams{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: param.ProductID,
	})
	if err != nil {
		if repository.IsUniqueViolation(err, "wishlist_items_user_id_product_id_key") {
			err = inErrors.ErrAlreadyInWishlist
		} else {
			err = fmt.Errorf("failed inserting wishlist item with error=%w", err)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger = logger.With().Str(log.KeyWishlistID, item.ID.String()).Logger()
	logger.Info().Msg("inserted wishlist item")

	return s.FindWishlist(c, userID)
}

// RemoveItemById deletes a wishlist entry owned by the caller.
func (s WishlistService) RemoveItemById(c context.Context, userID, itemID uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "WishlistService RemoveItemById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService RemoveItemById").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyWishlistID, itemID.String()).
		Str(log.KeyProcess, "deleting wishlist item").
		Logger()

	logger.Info().Msg("deleting wishlist item")
	affected, err := s.queries.DeleteWishlistItemByIdAndUserId(c, itemID, userID)
	if err != nil {
		err = fmt.Errorf("failed deleting wishlistItemId=%s with error=%w", itemID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if affected == 0 {
		err = fmt.Errorf("wishlistItemId=%s with error=%w", itemID.String(), inErrors.ErrWishlistNotFound)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted wishlist item")

	return nil
}

// RemoveItemByProduct deletes the caller's wishlist entry for a product.
func (s WishlistService) RemoveItemByProduct(c context.Context, userID, productID uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "WishlistService RemoveItemByProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService RemoveItemByProduct").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, productID.String()).
		Str(log.KeyProcess, "deleting wishlist item").
		Logger()

	logger.Info().Msg("deleting wishlist item")
	affected, err := s.queries.DeleteWishlistItemByProductIdAndUserId(c, productID, userID)
	if err != nil {
		err = fmt.Errorf("failed deleting wishlist item for productId=%s with error=%w", productID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if affected == 0 {
		err = fmt.Errorf("productId=%s with error=%w", productID.String(), inErrors.ErrWishlistNotFound)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted wishlist item")

	return nil
}
