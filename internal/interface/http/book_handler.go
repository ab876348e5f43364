package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/book-catalog-api/internal/application"
	"github.com/oksasatya/book-catalog-api/internal/domain/entity"
	"github.com/oksasatya/book-catalog-api/internal/interface/middleware"
	"github.com/oksasatya/book-catalog-api/pkg/response"
	"github.com/oksasatya/book-catalog-api/pkg/validation"
)

const dateLayout = "2006-01-02"

type BookHandler struct {
	Svc    *application.BookService
	Logger *logrus.Logger
}

func NewBookHandler(svc *application.BookService, logger *logrus.Logger) *BookHandler {
	return &BookHandler{Svc: svc, Logger: logger}
}

type bookRequest struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	ISBN          string `json:"isbn"`
	PublishedDate string `json:"publishedDate" binding:"required,bookdate"`
	Description   string `json:"description"`
}

// BookResponse is the wire shape of a book record.
type BookResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	PublishedDate string    `json:"publishedDate"`
	Description   string    `json:"description"`
	CoverURL      string    `json:"coverUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toBookResponse(b *entity.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		PublishedDate: b.PublishedDate.Format(dateLayout),
		Description:   b.Description,
		CoverURL:      b.CoverURL,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (r *bookRequest) toInput() application.BookInput {
	// binding already validated the date format
	date, _ := time.Parse(dateLayout, r.PublishedDate)
	return application.BookInput{
		Title:         r.Title,
		Author:        r.Author,
		ISBN:          r.ISBN,
		PublishedDate: date,
		Description:   r.Description,
	}
}

// bookID validates the :id route param. A non-UUID id can never match a row,
// so it is reported as a plain miss rather than a validation error.
func bookID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error[any](c, http.StatusNotFound, "book not found", nil)
		return "", false
	}
	return id, true
}

func (h *BookHandler) fail(c *gin.Context, err error, op string) {
	if errors.Is(err, application.ErrBookNotFound) {
		response.Error[any](c, http.StatusNotFound, "book not found", nil)
		return
	}
	h.Logger.WithError(err).WithField("op", op).Error("book operation failed")
	response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
}

// List GET /api/books
func (h *BookHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	books, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		h.fail(c, err, "list")
		return
	}
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, toBookResponse(&books[i]))
	}
	response.Success(c, http.StatusOK, out, "books", nil)
}

// Get GET /api/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := bookID(c)
	if !ok {
		return
	}
	b, err := h.Svc.Get(c.Request.Context(), uid, id)
	if err != nil {
		h.fail(c, err, "get")
		return
	}
	response.Success(c, http.StatusOK, toBookResponse(b), "book", nil)
}

// Create POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), uid, req.toInput())
	if err != nil {
		h.fail(c, err, "create")
		return
	}
	response.Success(c, http.StatusCreated, toBookResponse(b), "book created", nil)
}

// Update PUT /api/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := bookID(c)
	if !ok {
		return
	}
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Update(c.Request.Context(), uid, id, req.toInput())
	if err != nil {
		h.fail(c, err, "update")
		return
	}
	response.Success(c, http.StatusOK, toBookResponse(b), "book updated", nil)
}

// Delete DELETE /api/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := bookID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), uid, id); err != nil {
		h.fail(c, err, "delete")
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadCover POST /api/books/:id/cover (multipart field "file")
func (h *BookHandler) UploadCover(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := bookID(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadCover(c.Request.Context(), uid, id, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.fail(c, err, "upload_cover")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cover_url": url}, "cover uploaded", nil)
}

// Search GET /api/books/search?q=&size=
func (h *BookHandler) Search(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), uid, q, size)
	if err != nil {
		h.fail(c, err, "search")
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}
