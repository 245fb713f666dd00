package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/ga-helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/ga-helpdesk/internal/auth"
	"github.com/spec-kit/ga-helpdesk/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Accounts       *handlers.AccountsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)

	authed := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authed.Post("/auth/logout", cfg.Auth.Logout)
	authed.Post("/auth/password/change", cfg.Auth.ChangePassword)

	authed.Post("/tickets", cfg.Tickets.Submit)
	authed.Get("/tickets", cfg.Tickets.List)
	authed.Get("/tickets/metadata", cfg.Tickets.Metadata)
	authed.Get("/tickets/:id", cfg.Tickets.Get)

	admin := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Patch("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	admin.Delete("/tickets/:id", cfg.Tickets.Delete)

	admin.Get("/accounts", cfg.Accounts.List)
	admin.Post("/accounts", cfg.Accounts.Add)
	admin.Get("/accounts/admins", cfg.Accounts.Admins)
	admin.Delete("/accounts/:username", cfg.Accounts.Delete)
	admin.Get("/activity", cfg.Accounts.Activity)

	admin.Get("/reports/stats", cfg.Reports.Stats)
}
