package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/book-catalog-api/internal/domain/entity"
	repo "github.com/oksasatya/book-catalog-api/internal/domain/repository"
	"github.com/oksasatya/book-catalog-api/pkg/helpers"
)

var ErrBookNotFound = errors.New("book not found")

// BookService orchestrates owner-scoped CRUD over the book store.
// The caller's user id comes from the authenticated request context and
// scopes every query and mutation.
type BookService struct {
	Books        repo.BookRepository
	GCS          *storage.Client
	GCSBucket    string
	ES           *elasticsearch.Client
	ESBooksIndex string
	Logger       *logrus.Logger
}

func NewBookService(books repo.BookRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esBooksIndex string, logger *logrus.Logger) *BookService {
	return &BookService{
		Books:        books,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		ES:           es,
		ESBooksIndex: esBooksIndex,
		Logger:       logger,
	}
}

// BookInput carries the mutable content fields of a book.
type BookInput struct {
	Title         string
	Author        string
	ISBN          string
	PublishedDate time.Time
	Description   string
}

func (s *BookService) List(ctx context.Context, ownerID string) ([]entity.Book, error) {
	return s.Books.FindAllByOwner(ctx, ownerID)
}

func (s *BookService) Get(ctx context.Context, ownerID, id string) (*entity.Book, error) {
	b, err := s.Books.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BookService) Create(ctx context.Context, ownerID string, in BookInput) (*entity.Book, error) {
	b := &entity.Book{
		Title:         in.Title,
		Author:        in.Author,
		ISBN:          in.ISBN,
		PublishedDate: in.PublishedDate,
		Description:   in.Description,
		UserID:        ownerID,
	}
	if err := s.Books.Create(ctx, b); err != nil {
		return nil, err
	}
	_ = s.indexBook(ctx, b)
	return b, nil
}

// Update overwrites the content fields in place; owner and id are unchanged.
func (s *BookService) Update(ctx context.Context, ownerID, id string, in BookInput) (*entity.Book, error) {
	b, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	b.Title = in.Title
	b.Author = in.Author
	b.ISBN = in.ISBN
	b.PublishedDate = in.PublishedDate
	b.Description = in.Description
	if err := s.Books.Update(ctx, b); err != nil {
		return nil, err
	}
	_ = s.indexBook(ctx, b)
	return b, nil
}

func (s *BookService) Delete(ctx context.Context, ownerID, id string) error {
	exists, err := s.Books.ExistsByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrBookNotFound
	}
	if err := s.Books.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	s.deleteBookIndex(ctx, id)
	return nil
}

// UploadCover stores a cover image in GCS and saves its public URL on the book.
func (s *BookService) UploadCover(ctx context.Context, ownerID, id string, r io.Reader, filename, contentType string) (string, error) {
	b, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("covers", ownerID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	b.CoverURL = url
	if err := s.Books.Update(ctx, b); err != nil {
		return "", err
	}
	_ = s.indexBook(ctx, b)
	return url, nil
}

// Search performs a multi_match over title, author and description, filtered
// to the caller's own books.
func (s *BookService) Search(ctx context.Context, ownerID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESBooksIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "author", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": ownerID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESBooksIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *BookService) indexBook(ctx context.Context, b *entity.Book) error {
	if s.ES == nil || s.ESBooksIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":             b.ID,
		"title":          b.Title,
		"author":         b.Author,
		"isbn":           b.ISBN,
		"published_date": b.PublishedDate.Format("2006-01-02"),
		"description":    b.Description,
		"cover_url":      b.CoverURL,
		"user_id":        b.UserID,
		"created_at":     b.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":     b.UpdatedAt.Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESBooksIndex, DocumentID: b.ID, Body: strings.NewReader(string(body)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("book_id", b.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("book_id", b.ID).Warn("es index response error")
	}
	return nil
}

func (s *BookService) deleteBookIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESBooksIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESBooksIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("book_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
