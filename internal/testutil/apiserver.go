// Package testutil builds a fully wired API for tests.
package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apihttp "github.com/spec-kit/commodity-gate/internal/api/http"
	"github.com/spec-kit/commodity-gate/internal/auth"
	"github.com/spec-kit/commodity-gate/internal/events"
	"github.com/spec-kit/commodity-gate/internal/observability"
	"github.com/spec-kit/commodity-gate/internal/repository"
	"github.com/spec-kit/commodity-gate/internal/service"
)

// DemoPassword is the password of both seeded accounts.
const DemoPassword = "demo123"

// Stack is the wired app plus the parts tests inspect.
type Stack struct {
	App     *fiber.App
	Metrics *observability.Metrics
}

// NewStack wires the app the way cmd/api does, backed by the demo users
// and products and an in-memory revocation list.
func NewStack(t *testing.T) *Stack {
	t.Helper()
	logger := zap.NewNop()

	users, err := repository.NewDemoUserRepository(DemoPassword, bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := auth.NewTokenManager("testutil-secret-0123456789abcdefghij")
	require.NoError(t, err)
	revocations := repository.NewMemoryRevocationRepository(time.Now)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:    users,
		Revocations: revocations,
		Tokens:      tokens,
		Events:      dispatcher,
		Logger:      logger,
	})
	products := service.NewProductService(repository.NewMemoryProductRepository(repository.DemoProducts()...), dispatcher, logger)

	app := apihttp.NewServer(apihttp.ServerOptions{
		Name:     "commodity-gate",
		Version:  "test",
		Logger:   logger,
		Metrics:  metrics,
		Auth:     authService,
		Products: products,
		Gate: auth.NewGate(auth.GateOptions{
			Tokens:      tokens,
			Revocations: revocations,
			Events:      dispatcher,
			Metrics:     metrics,
			Logger:      logger,
		}),
		RequestTimeout: 5 * time.Second,
	})
	return &Stack{App: app, Metrics: metrics}
}

// NewAPIServer serves a new Stack over a real listener. It is closed when
// the test ends.
func NewAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(adaptor.FiberApp(NewStack(t).App))
	t.Cleanup(srv.Close)
	return srv
}
