package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/book-catalog-api/internal/container"
	handlers "github.com/oksasatya/book-catalog-api/internal/interface/http"
	"github.com/oksasatya/book-catalog-api/internal/interface/middleware"
	"github.com/oksasatya/book-catalog-api/pkg/helpers"
)

// BookModule wires the authenticated book routes.
// All of them run behind the bearer-token middleware; every handler scopes
// its queries by the caller's user id.

type BookModule struct {
	Handler *handlers.BookHandler
	JWT     *helpers.JWTManager
}

func NewBookModule(h *handlers.BookHandler, jwt *helpers.JWTManager) *BookModule {
	return &BookModule{Handler: h, JWT: jwt}
}

func (m *BookModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/books")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("", m.Handler.List)
		auth.GET("/search", m.Handler.Search)
		auth.GET("/:id", m.Handler.Get)
		auth.POST("", m.Handler.Create)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.POST("/:id/cover", m.Handler.UploadCover)
	}
}
