package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/book-catalog-api/internal/domain/entity"
)

// MockBookRepository is a testify mock for repository.BookRepository.
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]entity.Book, error) {
	args := m.Called(ctx, ownerID)
	if b := args.Get(0); b != nil {
		return b.([]entity.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Book, error) {
	args := m.Called(ctx, id, ownerID)
	if b := args.Get(0); b != nil {
		return b.(*entity.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookRepository) ExistsByIDAndOwner(ctx context.Context, id, ownerID string) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, b *entity.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, b *entity.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
