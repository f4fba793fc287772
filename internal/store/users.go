package store

import (
	"context"
	"database/sql"
	"fmt"

	"chat-relay/internal/users"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query user %d: %w", userID, err)
	}
	return true, nil
}

func (r *UserRepo) Create(ctx context.Context, u users.User) error {
	// OR IGNORE keeps onboarding idempotent even across processes
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (id, username) VALUES (?, ?)`,
		u.ID, u.Username)
	if err != nil {
		return fmt.Errorf("insert user %d: %w", u.ID, err)
	}
	return nil
}
