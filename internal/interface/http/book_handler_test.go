package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/book-catalog-api/internal/application"
	"github.com/oksasatya/book-catalog-api/internal/domain/entity"
	"github.com/oksasatya/book-catalog-api/internal/domain/repository"
	"github.com/oksasatya/book-catalog-api/internal/domain/repository/mocks"
	handlers "github.com/oksasatya/book-catalog-api/internal/interface/http"
	"github.com/oksasatya/book-catalog-api/internal/router/modules"
	"github.com/oksasatya/book-catalog-api/pkg/helpers"
	"github.com/oksasatya/book-catalog-api/pkg/validation"
)

const (
	ownerA = "11111111-1111-1111-1111-111111111111"
	ownerB = "22222222-2222-2222-2222-222222222222"
	duneID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
)

func newBookRouter(books *mocks.MockBookRepository) (*gin.Engine, *helpers.JWTManager) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := application.NewBookService(books, nil, "", nil, "", logrus.New())
	h := handlers.NewBookHandler(svc, logrus.New())

	r := gin.New()
	modules.NewBookModule(h, jwt).Register(r.Group("/api"))
	return r, jwt
}

func tokenFor(t *testing.T, jwt *helpers.JWTManager, uid, email, name string) string {
	t.Helper()
	token, _, err := jwt.GenerateAccessToken(uid, email, name)
	require.NoError(t, err)
	return token
}

func duneEntity() *entity.Book {
	date, _ := time.Parse("2006-01-02", "1965-08-01")
	now := time.Now()
	return &entity.Book{
		ID:            duneID,
		Title:         "Dune",
		Author:        "Frank Herbert",
		ISBN:          "9780441013593",
		PublishedDate: date,
		Description:   "Desert planet epic.",
		UserID:        ownerA,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestBookHandler_RequiresAuth(t *testing.T) {
	books := new(mocks.MockBookRepository)
	r, jwt := newBookRouter(books)

	t.Run("missing token", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/api/books", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbled token", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/api/books", nil, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := &helpers.JWTManager{Secret: jwt.Secret, TokenTTL: -time.Minute}
		token, _, err := expired.GenerateAccessToken(ownerA, "alice@x.com", "Alice")
		require.NoError(t, err)

		w, _ := doJSON(t, r, http.MethodGet, "/api/books", nil, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	books.AssertNotCalled(t, "FindAllByOwner", mock.Anything, mock.Anything)
}

func TestBookHandler_List(t *testing.T) {
	books := new(mocks.MockBookRepository)
	r, jwt := newBookRouter(books)

	books.On("FindAllByOwner", mock.Anything, ownerA).Return([]entity.Book{*duneEntity()}, nil)
	books.On("FindAllByOwner", mock.Anything, ownerB).Return([]entity.Book{}, nil)

	// owner sees exactly their book
	w, env := doJSON(t, r, http.MethodGet, "/api/books", nil, tokenFor(t, jwt, ownerA, "alice@x.com", "Alice"))
	assert.Equal(t, http.StatusOK, w.Code)

	var list []handlers.BookResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Dune", list[0].Title)
	assert.Equal(t, "1965-08-01", list[0].PublishedDate)

	// another user sees an empty catalog as a JSON array, not a missing key
	w, env = doJSON(t, r, http.MethodGet, "/api/books", nil, tokenFor(t, jwt, ownerB, "bob@x.com", "Bob"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", string(env.Data))
	list = nil
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}

func TestBookHandler_Get(t *testing.T) {
	books := new(mocks.MockBookRepository)
	r, jwt := newBookRouter(books)

	books.On("FindByIDAndOwner", mock.Anything, duneID, ownerA).Return(duneEntity(), nil)
	books.On("FindByIDAndOwner", mock.Anything, duneID, ownerB).Return(nil, repository.ErrNotFound)

	t.Run("owned", func(t *testing.T) {
		w, env := doJSON(t, r, http.MethodGet, "/api/books/"+duneID, nil, tokenFor(t, jwt, ownerA, "alice@x.com", "Alice"))
		assert.Equal(t, http.StatusOK, w.Code)

		var b handlers.BookResponse
		require.NoError(t, json.Unmarshal(env.Data, &b))
		assert.Equal(t, duneID, b.ID)
		assert.Equal(t, "9780441013593", b.ISBN)
	})

	t.Run("foreign owner gets 404", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/api/books/"+duneID, nil, tokenFor(t, jwt, ownerB, "bob@x.com", "Bob"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-uuid id gets 404", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/api/books/42", nil, tokenFor(t, jwt, ownerA, "alice@x.com", "Alice"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookHandler_Create(t *testing.T) {
	books := new(mocks.MockBookRepository)
	r, jwt := newBookRouter(books)

	books.On("Create", mock.Anything, mock.MatchedBy(func(b *entity.Book) bool {
		return b.UserID == ownerA && b.Title == "Dune"
	})).Run(func(args mock.Arguments) {
		b := args.Get(1).(*entity.Book)
		b.ID = duneID
		b.CreatedAt = time.Now()
		b.UpdatedAt = b.CreatedAt
	}).Return(nil)

	body := gin.H{
		"title":         "Dune",
		"author":        "Frank Herbert",
		"isbn":          "9780441013593",
		"publishedDate": "1965-08-01",
		"description":   "Desert planet epic.",
	}
	w, env := doJSON(t, r, http.MethodPost, "/api/books", body, tokenFor(t, jwt, ownerA, "alice@x.com", "Alice"))
	assert.Equal(t, http.StatusCreated, w.Code)

	var b handlers.BookResponse
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Equal(t, duneID, b.ID)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "Frank Herbert", b.Author)
	assert.Equal(t, "1965-08-01", b.PublishedDate)

	t.Run("bad published date", func(t *testing.T) {
		bad := gin.H{"title": "Dune", "author": "Frank Herbert", "publishedDate": "August 1965"}
		w, env := doJSON(t, r, http.MethodPost, "/api/books", bad, tokenFor(t, jwt, ownerA, "alice@x.com", "Alice"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotNil(t, env.Error)
	})
}

func TestBookHandler_Update(t *testing.T) {
	books := new(mocks.MockBookRepository)
	r, jwt := newBookRouter(books)

	books.On("FindByIDAndOwner", mock.Anything, duneID, ownerA).Return(duneEntity(), nil)
	books.On("FindByIDAndOwner", mock.Anything, duneID, ownerB).Return(nil, repository.ErrNotFound)
	books.On("Update", mock.Anything, mock.MatchedBy(func(b *entity.Book) bool {
		return b.ID == duneID && b.UserID == ownerA && b.Title == "Dune Messiah"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Book).UpdatedAt = time.Now().Add(time.Second)
	}).Return(nil)

	body := gin.H{
		"title":         "Dune Messiah",
		"author":        "Frank Herbert",
		"isbn":          "9780441013593",
		"publishedDate": "1969-10-15",
		"description":   "The sequel.",
	}

	t.Run("owned", func(t *testing.T) {
		w, env := doJSON(t, r, http.MethodPut, "/api/books/"+duneID, body, tokenFor(t, jwt, ownerA, "alice@x.com", "Alice"))
		assert.Equal(t, http.StatusOK, w.Code)

		var b handlers.BookResponse
		require.NoError(t, json.Unmarshal(env.Data, &b))
		assert.Equal(t, "Dune Messiah", b.Title)
		assert.Equal(t, "1969-10-15", b.PublishedDate)
		assert.True(t, b.UpdatedAt.After(b.CreatedAt))
	})

	t.Run("foreign owner gets 404", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPut, "/api/books/"+duneID, body, tokenFor(t, jwt, ownerB, "bob@x.com", "Bob"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookHandler_Delete(t *testing.T) {
	books := new(mocks.MockBookRepository)
	r, jwt := newBookRouter(books)

	books.On("ExistsByIDAndOwner", mock.Anything, duneID, ownerA).Return(true, nil)
	books.On("ExistsByIDAndOwner", mock.Anything, duneID, ownerB).Return(false, nil)
	books.On("DeleteByID", mock.Anything, duneID).Return(nil)

	t.Run("owned", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodDelete, "/api/books/"+duneID, nil, tokenFor(t, jwt, ownerA, "alice@x.com", "Alice"))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Zero(t, w.Body.Len())
	})

	t.Run("foreign owner gets 404", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodDelete, "/api/books/"+duneID, nil, tokenFor(t, jwt, ownerB, "bob@x.com", "Bob"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookHandler_SearchWithoutES(t *testing.T) {
	books := new(mocks.MockBookRepository)
	r, jwt := newBookRouter(books)

	w, env := doJSON(t, r, http.MethodGet, "/api/books/search?q=dune", nil, tokenFor(t, jwt, ownerA, "alice@x.com", "Alice"))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "[]", string(env.Data))
	var hits []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &hits))
	assert.Empty(t, hits)
}
