package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/book-catalog-api/internal/domain/entity"
)

// ErrNotFound is returned by repositories when a lookup finds no row.
var ErrNotFound = errors.New("not found")

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
