package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-radar/internal/types"
)

// CreateUser stores a new account. The email must be unique; a conflict
// surfaces as a wrapped constraint error.
func (db *DB) CreateUser(ctx context.Context, user *types.User) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO users (id, email, hashed_password, is_admin)
		 VALUES ($1, $2, $3, $4)`,
		user.ID, user.Email, user.HashedPassword, user.IsAdmin,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves an account by email, nil when absent.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	var user types.User
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, hashed_password, is_admin, created_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.HashedPassword, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// UpdateUserPassword replaces the stored password hash for one account.
func (db *DB) UpdateUserPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET hashed_password = $1 WHERE id = $2`,
		hashedPassword, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// GetUser retrieves an account by id, nil when absent.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	var user types.User
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, hashed_password, is_admin, created_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.HashedPassword, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
