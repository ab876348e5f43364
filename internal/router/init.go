package router

import (
	"github.com/oksasatya/book-catalog-api/internal/application"
	"github.com/oksasatya/book-catalog-api/internal/container"
	pginfra "github.com/oksasatya/book-catalog-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/book-catalog-api/internal/interface/http"
	"github.com/oksasatya/book-catalog-api/internal/router/modules"
)

func buildAuthModule() *modules.AuthModule {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetPGPool())
	svc := application.NewAuthService(
		repo,
		container.GetJWT(),
		container.GetRabbitPub(),
		container.GetLogger(),
		cfg.AppName,
		cfg.MailSendEnabled,
	)
	return modules.NewAuthModule(handlers.NewAuthHandler(svc, container.GetLogger()))
}

func buildBookModule() *modules.BookModule {
	cfg := container.GetConfig()
	repo := pginfra.NewBookRepository(container.GetPGPool())
	svc := application.NewBookService(
		repo,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESBooksIndex,
		container.GetLogger(),
	)
	return modules.NewBookModule(handlers.NewBookHandler(svc, container.GetLogger()), container.GetJWT())
}

// InitModules initializes all application modules and registers them with the router registry.
// This function should be called once during application startup.
func InitModules(r *Registry) {
	r.Add(buildAuthModule())
	r.Add(buildBookModule())
}
