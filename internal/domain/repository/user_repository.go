package repository

import (
	"context"
	"errors"

	"github.com/placeshare/backend/internal/domain/entity"
)

// ErrNotFound is returned by repositories when no row matches.
// ErrDuplicate is returned on a unique-constraint violation (user email).
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}
