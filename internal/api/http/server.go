package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/commodity-gate/internal/api/http/handlers"
	"github.com/spec-kit/commodity-gate/internal/auth"
	"github.com/spec-kit/commodity-gate/internal/observability"
	"github.com/spec-kit/commodity-gate/internal/persistence"
	"github.com/spec-kit/commodity-gate/internal/service"
)

// ServerOptions bundles what NewServer wires together. Metrics and Redis
// are optional.
type ServerOptions struct {
	Name           string
	Version        string
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	Redis          *persistence.Redis
	Gate           *auth.Gate
	Auth           *service.AuthService
	Products       *service.ProductService
	SecureCookies  bool
	RequestTimeout time.Duration
}

// NewServer builds the fiber app with the middleware chain, the access
// gate and every route.
func NewServer(opts ServerOptions) *fiber.App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ErrorHandler: ErrorHandler(logger),
	})
	RegisterMiddlewares(app, logger, opts.Metrics, opts.RequestTimeout)
	RegisterRoutes(app, RouteConfig{
		Health:   handlers.NewHealthHandler(opts.Name, opts.Version, opts.Redis, opts.Metrics),
		Auth:     handlers.NewAuthHandler(opts.Auth, logger, opts.SecureCookies),
		Pages:    handlers.NewPagesHandler(opts.Products),
		Products: handlers.NewProductsHandler(opts.Products),
		Users:    handlers.NewUsersHandler(opts.Auth),
		Gate:     opts.Gate,
	})
	return app
}
