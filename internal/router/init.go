package router

import (
	"github.com/eventku/auth-api/internal/application"
	"github.com/eventku/auth-api/internal/container"
	pginfra "github.com/eventku/auth-api/internal/infrastructure/postgres"
	handlers "github.com/eventku/auth-api/internal/interface/http"
	"github.com/eventku/auth-api/internal/router/modules"
)

// InitModules builds the feature modules from the container singletons and
// registers them with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetPGPool())

	svc := application.NewService(
		repo,
		container.GetHasher(),
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		container.GetRabbitPub(),
		container.GetES(),
		cfg.ESUsersIndex,
		cfg.ActivationURL,
		cfg.MailSendEnabled,
	)

	authHandler := handlers.NewAuthHandler(svc, container.GetLogger())
	userHandler := handlers.NewUserHandler(svc, container.GetLogger())
	healthHandler := handlers.NewHealthHandler(container.GetPGPool(), container.GetRedis())

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewHealthModule(healthHandler))
}
