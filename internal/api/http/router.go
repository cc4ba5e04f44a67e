package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commodity-gate/internal/api/http/handlers"
	"github.com/spec-kit/commodity-gate/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Pages    *handlers.PagesHandler
	Products *handlers.ProductsHandler
	Users    *handlers.UsersHandler
	Gate     *auth.Gate
}

// RegisterRoutes installs the access gate and wires HTTP routes. Every
// route below runs behind the gate; handlers add capability checks.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/api/auth", cfg.Auth.Login)
	app.Get("/api/auth", cfg.Auth.Session)
	app.Get("/api/auth/me", cfg.Auth.Me)
	app.Post("/api/auth/logout", cfg.Auth.Logout)

	app.Get("/", cfg.Pages.Home)
	app.Get("/login", cfg.Pages.Login)

	app.Get("/dashboard", auth.RequireCapability(auth.CapViewDashboard), cfg.Pages.Dashboard)
	app.Get("/analytics", auth.RequireCapability(auth.CapViewAnalytics), cfg.Pages.Analytics)
	app.Get("/users", auth.RequireCapability(auth.CapManageUsers), cfg.Pages.Users)
	app.Get("/products", auth.RequireCapability(auth.CapViewProducts), cfg.Pages.Products)
	app.Get("/products/add", auth.RequireCapability(auth.CapAddProducts), cfg.Pages.AddProduct)
	app.Get("/products/edit/:id", auth.RequireCapability(auth.CapEditProducts), cfg.Pages.EditProduct)

	api := app.Group("/api", auth.RequireAuthenticated())

	products := api.Group("/products")
	products.Get("/", auth.RequireCapability(auth.CapViewProducts), cfg.Products.ListProducts)
	products.Post("/", auth.RequireCapability(auth.CapAddProducts), cfg.Products.CreateProduct)
	products.Get("/:id", auth.RequireCapability(auth.CapViewProducts), cfg.Products.GetProduct)
	products.Put("/:id", auth.RequireCapability(auth.CapEditProducts), cfg.Products.UpdateProduct)
	products.Delete("/:id", auth.RequireCapability(auth.CapDeleteProducts), cfg.Products.DeleteProduct)

	api.Get("/dashboard/stats", auth.RequireCapability(auth.CapViewDashboard), cfg.Products.Stats)
	api.Get("/users", auth.RequireCapability(auth.CapManageUsers), cfg.Users.ListUsers)
	api.Get("/export/products", auth.RequireCapability(auth.CapExportData), cfg.Products.Export)
}
