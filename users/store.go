// Package users is the PostgreSQL-backed user store and the profile endpoint.
// This file, `store.go`, implements auth.UserStore on top of a pgx connection pool.
package users

import (
	"context"
	"errors"
	"fmt"

	// `pgx` specific imports for PostgreSQL interaction.
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/user/stockview-go/auth"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// userColumns is the projection every lookup scans, in scanUser order.
const userColumns = `id, name, email, password, role, customer_name, photo, verified, created_at, updated_at`

// Querier is the slice of *pgxpool.Pool the store needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements auth.UserStore against the `users` table.
type Store struct {
	db Querier
}

var _ auth.UserStore = (*Store)(nil)

// NewStore creates a Store. Pass a *pgxpool.Pool in production.
func NewStore(db Querier) *Store {
	return &Store{db: db}
}

// scanUser reads one row of userColumns. `customer_name` and `photo` are nullable.
func scanUser(row pgx.Row) (*auth.User, error) {
	var (
		u            auth.User
		customerName pgtype.Text
		photo        pgtype.Text
	)
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.Role,
		&customerName,
		&photo,
		&u.Verified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	if customerName.Valid {
		u.CustomerName = customerName.String
	}
	if photo.Valid {
		u.Photo = photo.String
	}
	return &u, nil
}

// FindUserByID loads a user by primary key.
func (s *Store) FindUserByID(ctx context.Context, id int64) (*auth.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(s.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, auth.ErrUserNotFound) {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return user, err
}

// FindUserByEmail loads a user by (lower-cased) email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(s.db.QueryRow(ctx, query, email))
	if err != nil && !errors.Is(err, auth.ErrUserNotFound) {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, err
}

// UserExists reports whether the email is already registered.
func (s *Store) UserExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// InsertUser stores a new user and returns it with the generated id and timestamps.
// A unique violation on email is reported as auth.ErrEmailTaken.
func (s *Store) InsertUser(ctx context.Context, user *auth.User) (*auth.User, error) {
	query := `
		INSERT INTO users (name, email, password, role, customer_name)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING ` + userColumns

	created, err := scanUser(s.db.QueryRow(ctx, query,
		user.Name, user.Email, user.Password, user.Role, user.CustomerName))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, auth.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}
