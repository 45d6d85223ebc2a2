package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Jobs   *handlers.JobsHandler
	Bids   *handlers.BidsHandler
	Gate   *auth.OwnerGate
}

// RegisterRoutes wires HTTP routes. Only the three identity-scoped list
// routes pass through the ownership gate; every other route is public or
// deliberately ungated.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("marketplace-service is running")
	})
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	api.Post("/jwt", cfg.Auth.IssueToken)
	api.Post("/logout", cfg.Auth.Logout)

	ownerGate := cfg.Gate.RequireOwner("email")

	api.Get("/jobs", ownerGate, cfg.Jobs.ListMine)
	api.Get("/jobs/:id", cfg.Jobs.Get)
	api.Get("/tab1", cfg.Jobs.ByCategory(domain.CategoryWebDevelopment))
	api.Get("/tab2", cfg.Jobs.ByCategory(domain.CategoryDigitalMarketing))
	api.Get("/tab3", cfg.Jobs.ByCategory(domain.CategoryGraphicsDesign))
	api.Post("/jobs", cfg.Jobs.Create)
	api.Put("/jobs/:id", cfg.Jobs.Update)
	api.Delete("/jobs/:id", cfg.Jobs.Delete)

	api.Get("/bids", ownerGate, cfg.Bids.ListAsSeller)
	api.Get("/bids-request", ownerGate, cfg.Bids.ListAsBuyer)
	api.Post("/bids", cfg.Bids.Create)
	api.Put("/bids-request/:id", cfg.Bids.UpdateStatus)
}
