package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/commodity-gate/internal/api/http"
	"github.com/spec-kit/commodity-gate/internal/auth"
	"github.com/spec-kit/commodity-gate/internal/config"
	"github.com/spec-kit/commodity-gate/internal/events"
	"github.com/spec-kit/commodity-gate/internal/observability"
	"github.com/spec-kit/commodity-gate/internal/persistence"
	"github.com/spec-kit/commodity-gate/internal/repository"
	"github.com/spec-kit/commodity-gate/internal/service"
	"github.com/spec-kit/commodity-gate/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.UsingDevSecret {
		logger.Warn("AUTH_JWT_SECRET not set, using development secret")
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret)
	if err != nil {
		log.Fatalf("failed to init token manager: %v", err)
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var revocations repository.RevocationRepository
	if redis.Enabled() {
		revocations = repository.NewRedisRevocationRepository(redis.Client, cfg.Redis.KeyPrefix)
	} else {
		revocations = repository.NewMemoryRevocationRepository(time.Now)
	}

	userRepo, err := repository.NewDemoUserRepository(cfg.Auth.DemoPassword, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to seed users", zap.Error(err))
	}
	productRepo := repository.NewMemoryProductRepository(repository.DemoProducts()...)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:    userRepo,
		Revocations: revocations,
		Tokens:      tokens,
		Events:      dispatcher,
		Logger:      logger,
	})
	productService := service.NewProductService(productRepo, dispatcher, logger)

	gate := auth.NewGate(auth.GateOptions{
		Tokens:       tokens,
		Revocations:  revocations,
		Events:       dispatcher,
		Metrics:      metrics,
		Logger:       logger,
		SecureCookie: cfg.App.SecureCookies(),
	})

	app := httptransport.NewServer(httptransport.ServerOptions{
		Name:           cfg.App.Name,
		Version:        cfg.App.Version,
		Logger:         logger,
		Metrics:        metrics,
		Redis:          redis,
		Gate:           gate,
		Auth:           authService,
		Products:       productService,
		SecureCookies:  cfg.App.SecureCookies(),
		RequestTimeout: cfg.App.RequestTimeout(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
