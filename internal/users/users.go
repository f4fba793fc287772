package users

import (
	"context"
	"fmt"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Repository interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	Create(ctx context.Context, user User) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// IsRegistered reports whether a record exists for the given user id.
// It queries the repository on every call; registration is a presence
// check, not a security boundary.
func (s *Service) IsRegistered(ctx context.Context, userID int64) (bool, error) {
	ok, err := s.repo.Exists(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("check user %d: %w", userID, err)
	}
	return ok, nil
}

// Onboard creates the user record if it does not exist yet. Calling it
// again for the same id is a no-op.
func (s *Service) Onboard(ctx context.Context, user User) error {
	ok, err := s.repo.Exists(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("check user %d: %w", user.ID, err)
	}
	if ok {
		return nil
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("create user %d: %w", user.ID, err)
	}
	return nil
}
