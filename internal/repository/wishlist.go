package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertWishlistItem = `
INSERT INTO wishlist_items (id, user_id, product_id)
VALUES ($1, $2, $3)
RETURNING id, user_id, product_id, created_at
`

type InsertWishlistItemParams struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
}

func (q *Queries) InsertWishlistItem(c context.Context, arg InsertWishlistItemParams) (WishlistItem, error) {
	var item WishlistItem
	err := q.db.QueryRow(c, insertWishlistItem, arg.ID, arg.UserID, arg.ProductID).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt)
	return item, err
}

const findWishlistByUserId = `
SELECT w.id, w.user_id, w.product_id, w.created_at,
       p.name, p.description, p.price, p.stock_quantity, p.image_url
FROM wishlist_items w
JOIN products p ON p.id = w.product_id
WHERE w.user_id = $1
ORDER BY w.created_at DESC
`

type FindWishlistByUserIdRow struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ProductID     uuid.UUID
	CreatedAt     pgtype.Timestamptz
	ProductName   string
	Description   string
	Price         pgtype.Numeric
	StockQuantity int32
	ImageUrl      pgtype.Text
}

func (q *Queries) FindWishlistByUserId(c context.Context, userID uuid.UUID) ([]FindWishlistByUserIdRow, error) {
	rows, err := q.db.Query(c, findWishlistByUserId, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []FindWishlistByUserIdRow{}
	for rows.Next() {
		var row FindWishlistByUserIdRow
		if err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.ProductID,
			&row.CreatedAt,
			&row.ProductName,
			&row.Description,
			&row.Price,
			&row.StockQuantity,
			&row.ImageUrl,
		); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}

const deleteWishlistItemByIdAndUserId = `
DELETE FROM wishlist_items
WHERE id = $1 AND user_id = $2
`

func (q *Queries) DeleteWishlistItemByIdAndUserId(c context.Context, id, userID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, deleteWishlistItemByIdAndUserId, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteWishlistItemByProductIdAndUserId = `
DELETE FROM wishlist_items
WHERE product_id = $1 AND user_id = $2
`

func (q *Queries) DeleteWishlistItemByProductIdAndUserId(c context.Context, productID, userID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, deleteWishlistItemByProductIdAndUserId, productID, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
