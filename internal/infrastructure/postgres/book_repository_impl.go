package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/book-catalog-api/internal/domain/entity"
	"github.com/oksasatya/book-catalog-api/internal/domain/repository"
)

type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

const bookColumns = `id, title, author, isbn, published_date, description, cover_url, user_id, created_at, updated_at`

func scanBook(row pgx.Row, b *entity.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublishedDate,
		&b.Description, &b.CoverURL, &b.UserID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]entity.Book, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]entity.Book, 0)
	for rows.Next() {
		var b entity.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *BookRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Book, error) {
	b := &entity.Book{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)

	if err := scanBook(row, b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BookRepository) ExistsByIDAndOwner(ctx context.Context, id, ownerID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM books WHERE id = $1 AND user_id = $2)
	`, id, ownerID).Scan(&exists)
	return exists, err
}

func (r *BookRepository) Create(ctx context.Context, b *entity.Book) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO books (title, author, isbn, published_date, description, cover_url, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, b.Title, b.Author, b.ISBN, b.PublishedDate, b.Description, b.CoverURL, b.UserID)

	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// Update overwrites the content fields only; id and user_id are immutable.
// updated_at comes from the database clock, same as created_at on insert.
func (r *BookRepository) Update(ctx context.Context, b *entity.Book) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, published_date = $4,
		    description = $5, cover_url = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at
	`, b.Title, b.Author, b.ISBN, b.PublishedDate, b.Description, b.CoverURL, b.ID)

	if err := row.Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *BookRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.BookRepository = (*BookRepository)(nil)
