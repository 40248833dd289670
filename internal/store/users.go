package store

import (
	"context"
	"database/sql"

	"rhythm-registry/internal/database"
	"rhythm-registry/internal/models"
)

const userColumns = `id, first_name, last_name, email, password_hash, role, is_active, created_at`

// NewUser is the data needed to insert a user row.
type NewUser struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         models.Role
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
	)
	return user, err
}

// FindUserByEmail returns sql.ErrNoRows when no user has that exact email.
func FindUserByEmail(ctx context.Context, q database.Querier, email string) (models.User, error) {
	return scanUser(q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
}

// ListUsers returns one page of users ordered by ascending id.
func ListUsers(ctx context.Context, q database.Querier, limit, offset int) ([]models.User, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id ASC LIMIT $1 OFFSET $2`,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func InsertUser(ctx context.Context, q database.Querier, user NewUser) (models.User, error) {
	return scanUser(q.QueryRowContext(ctx,
		`INSERT INTO users (first_name, last_name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Role,
	))
}

// UpdateUser applies patch to the user row. It returns sql.ErrNoRows when the
// id does not exist and ErrNoFields when patch is empty.
func UpdateUser(ctx context.Context, q database.Querier, id int, patch Patch) (models.User, error) {
	query, args, err := buildUpdate("users", patch, "", "id = %s", []any{id}, userColumns)
	if err != nil {
		return models.User{}, err
	}
	return scanUser(q.QueryRowContext(ctx, query, args...))
}

// DeleteUser reports whether a row was removed.
func DeleteUser(ctx context.Context, q database.Querier, id int) (bool, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return affectedOne(result)
}

func CountUsers(ctx context.Context, q database.Querier) (int64, error) {
	var total int64
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
	return total, err
}

func affectedOne(result sql.Result) (bool, error) {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
