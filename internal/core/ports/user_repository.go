package ports

import (
	"context"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create stores a new user. Returns domain.ErrUsernameTaken on a duplicate username.
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateProfile changes username and goal. Returns domain.ErrUserNotFound or
	// domain.ErrUsernameTaken.
	UpdateProfile(ctx context.Context, user *domain.User) error
}
