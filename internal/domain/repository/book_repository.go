package repository

import (
	"context"

	"github.com/oksasatya/book-catalog-api/internal/domain/entity"
)

// BookRepository defines the persistence contract for book records.
// Every finder is scoped by owner id; that scoping is the only
// authorization rule in the system.
type BookRepository interface {
	FindAllByOwner(ctx context.Context, ownerID string) ([]entity.Book, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Book, error)
	ExistsByIDAndOwner(ctx context.Context, id, ownerID string) (bool, error)
	Create(ctx context.Context, b *entity.Book) error
	Update(ctx context.Context, b *entity.Book) error
	DeleteByID(ctx context.Context, id string) error
}
