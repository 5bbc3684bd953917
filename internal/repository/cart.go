package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findOrCreateCart = `
INSERT INTO carts (id, user_id)
VALUES ($1, $2)
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING id, user_id, created_at, updated_at
`

// FindOrCreateCart returns the user's cart, creating it when absent. The
// conflict clause makes the insert a no-op read on the existing row.
func (q *Queries) FindOrCreateCart(c context.Context, id, userID uuid.UUID) (Cart, error) {
	var cart Cart
	err := q.db.QueryRow(c, findOrCreateCart, id, userID).
		Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	return cart, err
}

const findCartByUserId = `
SELECT id, user_id, created_at, updated_at
FROM carts
WHERE user_id = $1
`

func (q *Queries) FindCartByUserId(c context.Context, userID uuid.UUID) (Cart, error) {
	var cart Cart
	err := q.db.QueryRow(c, findCartByUserId, userID).
		Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	return cart, err
}

const findCartItemsByCartId = `
SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
       p.name, p.price, p.stock_quantity, p.image_url
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at
`

type FindCartItemsByCartIdRow struct {
	ID            uuid.UUID
	CartID        uuid.UUID
	ProductID     uuid.UUID
	Quantity      int32
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
	ProductName   string
	Price         pgtype.Numeric
	StockQuantity int32
	ImageUrl      pgtype.Text
}

func (q *Queries) FindCartItemsByCartId(c context.Context, cartID uuid.UUID) ([]FindCartItemsByCartIdRow, error) {
	rows, err := q.db.Query(c, findCartItemsByCartId, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []FindCartItemsByCartIdRow{}
	for rows.Next() {
		var row FindCartItemsByCartIdRow
		if err := rows.Scan(
			&row.ID,
			&row.CartID,
			&row.ProductID,
			&row.Quantity,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.ProductName,
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

const findCartItemByCartAndProduct = `
SELECT id, cart_id, product_id, quantity, created_at, updated_at
FROM cart_items
WHERE cart_id = $1 AND product_id = $2
`

func (q *Queries) FindCartItemByCartAndProduct(
	c context.Context,
	cartID, productID uuid.UUID,
) (CartItem, error) {
	return scanCartItem(q.db.QueryRow(c, findCartItemByCartAndProduct, cartID, productID))
}

const findCartItemByIdAndUserId = `
SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at
FROM cart_items ci
JOIN carts ON carts.id = ci.cart_id
WHERE ci.id = $1 AND carts.user_id = $2
`

// FindCartItemByIdAndUserId scopes the lookup to the caller's cart so a
// foreign item is indistinguishable from a missing one.
func (q *Queries) FindCartItemByIdAndUserId(
	c context.Context,
	id, userID uuid.UUID,
) (CartItem, error) {
	return scanCartItem(q.db.QueryRow(c, findCartItemByIdAndUserId, id, userID))
}

const upsertCartItem = `
INSERT INTO cart_items (id, cart_id, product_id, quantity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()
RETURNING id, cart_id, product_id, quantity, created_at, updated_at
`

type UpsertCartItemParams struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
}

func (q *Queries) UpsertCartItem(c context.Context, arg UpsertCartItemParams) (CartItem, error) {
	row := q.db.QueryRow(c, upsertCartItem, arg.ID, arg.CartID, arg.ProductID, arg.Quantity)
	return scanCartItem(row)
}

const updateCartItemQuantity = `
UPDATE cart_items
SET quantity = $2, updated_at = now()
WHERE id = $1
RETURNING id, cart_id, product_id, quantity, created_at, updated_at
`

func (q *Queries) UpdateCartItemQuantity(c context.Context, id uuid.UUID, quantity int32) (CartItem, error) {
	return scanCartItem(q.db.QueryRow(c, updateCartItemQuantity, id, quantity))
}

const deleteCartItemByIdAndUserId = `
DELETE FROM cart_items
USING carts
WHERE cart_items.id = $1
  AND carts.id = cart_items.cart_id
  AND carts.user_id = $2
`

func (q *Queries) DeleteCartItemByIdAndUserId(c context.Context, id, userID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, deleteCartItemByIdAndUserId, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteCartItemsByCartId = `
DELETE FROM cart_items
WHERE cart_id = $1
`

func (q *Queries) DeleteCartItemsByCartId(c context.Context, cartID uuid.UUID) error {
	_, err := q.db.Exec(c, deleteCartItemsByCartId, cartID)
	return err
}

const touchCart = `
UPDATE carts
SET updated_at = now()
WHERE id = $1
`

func (q *Queries) TouchCart(c context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(c, touchCart, id)
	return err
}

func scanCartItem(row interface{ Scan(...interface{}) error }) (CartItem, error) {
	var item CartItem
	err := row.Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return item, err
}
