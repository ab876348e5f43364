package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/book-catalog-api/internal/container"
	handlers "github.com/oksasatya/book-catalog-api/internal/interface/http"
	"github.com/oksasatya/book-catalog-api/internal/interface/middleware"
)

// AuthModule wires registration/login/logout routes.
// Public: POST /api/auth/register, POST /api/auth/login, POST /api/auth/logout

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil) // 5 req/min per IP
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)          // 10 req/min per IP

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	// Logout is stateless; tokens stay valid until expiry.
	rg.POST("/auth/logout", m.Handler.Logout)
}
