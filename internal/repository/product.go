package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const productColumns = `id, name, description, price, stock_quantity, image_url, category_id, created_at, updated_at`

const insertProduct = `
INSERT INTO products (id, name, description, price, stock_quantity, image_url, category_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + productColumns

type InsertProductParams struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Price         pgtype.Numeric
	StockQuantity int32
	ImageUrl      pgtype.Text
	CategoryID    uuid.UUID
}

func (q *Queries) InsertProduct(c context.Context, arg InsertProductParams) (Product, error) {
	row := q.db.QueryRow(c, insertProduct,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.StockQuantity,
		arg.ImageUrl,
		arg.CategoryID,
	)
	return scanProduct(row)
}

const findProductById = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`

func (q *Queries) FindProductById(c context.Context, id uuid.UUID) (Product, error) {
	return scanProduct(q.db.QueryRow(c, findProductById, id))
}

type FindProductsParams struct {
	CategoryID *uuid.UUID
	MinPrice   pgtype.Numeric
	MaxPrice   pgtype.Numeric
	InStock    bool
	Search     string
}

// FindProducts builds the filter clauses dynamically; absent filters add no
// clause, matching the catalog's query-parameter contract.
func (q *Queries) FindProducts(c context.Context, arg FindProductsParams) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE true`
	args := []interface{}{}
	if arg.CategoryID != nil {
		args = append(args, *arg.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if arg.MinPrice.Valid {
		args = append(args, arg.MinPrice)
		query += fmt.Sprintf(" AND price >= $%d", len(args))
	}
	if arg.MaxPrice.Valid {
		args = append(args, arg.MaxPrice)
		query += fmt.Sprintf(" AND price <= $%d", len(args))
	}
	if arg.InStock {
		query += " AND stock_quantity > 0"
	}
	if arg.Search != "" {
		args = append(args, arg.Search)
		query += fmt.Sprintf(
			" AND (name ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')",
			len(args), len(args),
		)
	}
	query += " ORDER BY created_at DESC"

	rows, err := q.db.Query(c, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

const findProductsByCategoryId = `
SELECT ` + productColumns + `
FROM products
WHERE category_id = $1
ORDER BY created_at DESC
`

func (q *Queries) FindProductsByCategoryId(c context.Context, categoryID uuid.UUID) ([]Product, error) {
	rows, err := q.db.Query(c, findProductsByCategoryId, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

const findLowStockProducts = `
SELECT ` + productColumns + `
FROM products
WHERE stock_quantity < $1
ORDER BY stock_quantity
`

func (q *Queries) FindLowStockProducts(c context.Context, threshold int32) ([]Product, error) {
	rows, err := q.db.Query(c, findLowStockProducts, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

const updateProduct = `
UPDATE products
SET name           = COALESCE($2, name),
    description    = COALESCE($3, description),
    price          = COALESCE($4, price),
    stock_quantity = COALESCE($5, stock_quantity),
    image_url      = COALESCE($6, image_url),
    category_id    = COALESCE($7, category_id),
    updated_at     = now()
WHERE id = $1
RETURNING ` + productColumns

type UpdateProductParams struct {
	ID            uuid.UUID
	Name          pgtype.Text
	Description   pgtype.Text
	Price         pgtype.Numeric
	StockQuantity pgtype.Int4
	ImageUrl      pgtype.Text
	CategoryID    *uuid.UUID
}

func (q *Queries) UpdateProduct(c context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(c, updateProduct,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.StockQuantity,
		arg.ImageUrl,
		arg.CategoryID,
	)
	return scanProduct(row)
}

const updateProductStock = `
UPDATE products
SET stock_quantity = $2, updated_at = now()
WHERE id = $1
RETURNING ` + productColumns

func (q *Queries) UpdateProductStock(c context.Context, id uuid.UUID, quantity int32) (Product, error) {
	return scanProduct(q.db.QueryRow(c, updateProductStock, id, quantity))
}

const deleteProduct = `
DELETE FROM products
WHERE id = $1
`

func (q *Queries) DeleteProduct(c context.Context, id uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, deleteProduct, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanProduct(row interface{ Scan(...interface{}) error }) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.StockQuantity,
		&p.ImageUrl,
		&p.CategoryID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func scanProducts(rows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
}) ([]Product, error) {
	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.StockQuantity,
			&p.ImageUrl,
			&p.CategoryID,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
