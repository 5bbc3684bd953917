package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertUser = `
INSERT INTO users (id, username, email, password, first_name, last_name, is_staff)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, username, email, password, first_name, last_name, is_staff, created_at, updated_at
`

type InsertUserParams struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	IsStaff   bool
}

func (q *Queries) InsertUser(c context.Context, arg InsertUserParams) (User, error) {
	row := q.db.QueryRow(c, insertUser,
		arg.ID,
		arg.Username,
		arg.Email,
		arg.Password,
		arg.FirstName,
		arg.LastName,
		arg.IsStaff,
	)
	return scanUser(row)
}

const findUserById = `
SELECT id, username, email, password, first_name, last_name, is_staff, created_at, updated_at
FROM users
WHERE id = $1
`

func (q *Queries) FindUserById(c context.Context, id uuid.UUID) (User, error) {
	return scanUser(q.db.QueryRow(c, findUserById, id))
}

const findUserByUsername = `
SELECT id, username, email, password, first_name, last_name, is_staff, created_at, updated_at
FROM users
WHERE username = $1 OR email = $1
`

// FindUserByUsername resolves login identifiers; both the username and the
// email are accepted.
func (q *Queries) FindUserByUsername(c context.Context, username string) (User, error) {
	return scanUser(q.db.QueryRow(c, findUserByUsername, username))
}

const updateUserProfile = `
UPDATE users
SET first_name = COALESCE($2, first_name),
    last_name  = COALESCE($3, last_name),
    email      = COALESCE($4, email),
    updated_at = now()
WHERE id = $1
RETURNING id, username, email, password, first_name, last_name, is_staff, created_at, updated_at
`

type UpdateUserProfileParams struct {
	ID        uuid.UUID
	FirstName pgtype.Text
	LastName  pgtype.Text
	Email     pgtype.Text
}

func (q *Queries) UpdateUserProfile(c context.Context, arg UpdateUserProfileParams) (User, error) {
	row := q.db.QueryRow(c, updateUserProfile, arg.ID, arg.FirstName, arg.LastName, arg.Email)
	return scanUser(row)
}

const updateUserPassword = `
UPDATE users
SET password = $2, updated_at = now()
WHERE id = $1
`

func (q *Queries) UpdateUserPassword(c context.Context, id uuid.UUID, password string) error {
	_, err := q.db.Exec(c, updateUserPassword, id, password)
	return err
}

func scanUser(row interface{ Scan(...interface{}) error }) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Password,
		&u.FirstName,
		&u.LastName,
		&u.IsStaff,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}
