package repository

import (
	"context"

	"github.com/messagely/messagely/internal/core/domain"
)

type UserRepository interface {
	// Create inserts a new user. A username collision surfaces as a
	// duplicate-username domain error from the storage layer, not from a
	// racy pre-check.
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateLoginTimestamp(ctx context.Context, username string) error
	List(ctx context.Context) ([]domain.Profile, error)
}
