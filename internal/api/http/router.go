package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/craftlink/marketplace-api/internal/api/http/handlers"
	"github.com/craftlink/marketplace-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Account        *handlers.AccountHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Auth.Register)
	app.Post("/login", cfg.Auth.Login)

	authGroup := app.Group("/auth", cfg.AuthMiddleware.Handle)
	authGroup.Get("/me", cfg.Account.Me)

	providers := app.Group("/providers", cfg.AuthMiddleware.Handle, auth.RequireProvider())
	providers.Get("/me", cfg.Account.ProviderMe)
}
