// Package repository provides the PostgreSQL mirror of the user directory.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/userportal/internal/models"
)

// PostgresUserRepository mirrors directory writes into the users table.
// The in-memory directory stays authoritative; rows are overwritten as the
// process assigns ids from zero on every start.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// InsertUser writes a freshly registered user. A row left over from an
// earlier run with the same id is replaced.
func (r *PostgresUserRepository) InsertUser(ctx context.Context, u models.StoredUser) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (id, first_name, last_name, email, password)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		 SET first_name = EXCLUDED.first_name,
		     last_name = EXCLUDED.last_name,
		     email = EXCLUDED.email,
		     password = EXCLUDED.password`,
		int64(u.ID), u.User.FirstName(), u.User.LastName(), u.User.Email(), u.User.Password(),
	)
	if err != nil {
		return fmt.Errorf("InsertUser %d: %w", u.ID, err)
	}
	return nil
}

// UpdateUser overwrites the mirrored row of u.
// It fails if no row with that id exists.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, u models.StoredUser) error {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE users SET first_name = $2, last_name = $3, email = $4, password = $5 WHERE id = $1`,
		int64(u.ID), u.User.FirstName(), u.User.LastName(), u.User.Email(), u.User.Password(),
	)
	if err != nil {
		return fmt.Errorf("UpdateUser %d: %w", u.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateUser %d: %w", u.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("UpdateUser %d: %w", u.ID, sql.ErrNoRows)
	}
	return nil
}

// CountUsers returns the number of mirrored rows.
func (r *PostgresUserRepository) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountUsers: %w", err)
	}
	return n, nil
}
