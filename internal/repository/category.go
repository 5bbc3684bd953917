package repository

import (
	"context"

	"github.com/google/uuid"
)

const insertCategory = `
INSERT INTO categories (id, name)
VALUES ($1, $2)
RETURNING id, name
`

func (q *Queries) InsertCategory(c context.Context, id uuid.UUID, name string) (Category, error) {
	var cat Category
	err := q.db.QueryRow(c, insertCategory, id, name).Scan(&cat.ID, &cat.Name)
	return cat, err
}

const findCategories = `
SELECT c.id, c.name, count(p.id) AS products_count
FROM categories c
LEFT JOIN products p ON p.category_id = c.id
GROUP BY c.id, c.name
ORDER BY c.name
`

type FindCategoriesRow struct {
	ID            uuid.UUID
	Name          string
	ProductsCount int64
}

func (q *Queries) FindCategories(c context.Context) ([]FindCategoriesRow, error) {
	rows, err := q.db.Query(c, findCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []FindCategoriesRow{}
	for rows.Next() {
		var row FindCategoriesRow
		if err := rows.Scan(&row.ID, &row.Name, &row.ProductsCount); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}

const findCategoryById = `
SELECT c.id, c.name, count(p.id) AS products_count
FROM categories c
LEFT JOIN products p ON p.category_id = c.id
WHERE c.id = $1
GROUP BY c.id, c.name
`

func (q *Queries) FindCategoryById(c context.Context, id uuid.UUID) (FindCategoriesRow, error) {
	var row FindCategoriesRow
	err := q.db.QueryRow(c, findCategoryById, id).Scan(&row.ID, &row.Name, &row.ProductsCount)
	return row, err
}

const updateCategory = `
UPDATE categories
SET name = $2
WHERE id = $1
RETURNING id, name
`

func (q *Queries) UpdateCategory(c context.Context, id uuid.UUID, name string) (Category, error) {
	var cat Category
	err := q.db.QueryRow(c, updateCategory, id, name).Scan(&cat.ID, &cat.Name)
	return cat, err
}

const deleteCategory = `
DELETE FROM categories
WHERE id = $1
`

func (q *Queries) DeleteCategory(c context.Context, id uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, deleteCategory, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
