package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/api/http/handlers"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/auth"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Shell      *handlers.ShellHandler
	Auth       *handlers.AuthHandler
	Dashboard  *handlers.DashboardHandler
	Complaints *handlers.ComplaintsHandler
	Session    *auth.SessionMiddleware
	Metrics    *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if reg := cfg.Metrics.Registry(); reg != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	}

	app.Get("/", cfg.Session.Optional, cfg.Shell.Index)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.SignUp)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/session", cfg.Session.Handle, cfg.Auth.Session)
	authGroup.Post("/logout", cfg.Session.Handle, cfg.Auth.Logout)

	app.Get("/dashboard", cfg.Session.Handle, cfg.Dashboard.Get)

	complaints := app.Group("/complaints", cfg.Session.Handle)
	complaints.Get("", cfg.Complaints.ListComplaints)
	complaints.Post("", auth.RequireStudent(), cfg.Complaints.CreateComplaint)
	complaints.Get("/:id", cfg.Complaints.GetComplaint)
	complaints.Post("/:id/comments", cfg.Complaints.AddComment)
	complaints.Patch("/:id/status", auth.RequireAdmin(), cfg.Complaints.UpdateStatus)
}
