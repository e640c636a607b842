package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/craftlink/marketplace-api/internal/api/http"
	"github.com/craftlink/marketplace-api/internal/api/http/handlers"
	"github.com/craftlink/marketplace-api/internal/auth"
	"github.com/craftlink/marketplace-api/internal/config"
	"github.com/craftlink/marketplace-api/internal/events"
	"github.com/craftlink/marketplace-api/internal/observability"
	"github.com/craftlink/marketplace-api/internal/persistence"
	"github.com/craftlink/marketplace-api/internal/repository"
	"github.com/craftlink/marketplace-api/internal/service"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	profileRepo := repository.NewProviderProfileRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	registerAuditSubscriber(dispatcher, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo: accountRepo,
		ProfileRepo: profileRepo,
		Dispatcher:  dispatcher,
	})
	authMiddleware := auth.NewMiddleware(authService.TokenManager(), accountRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(authService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		Account:        accountHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func registerAuditSubscriber(dispatcher events.Dispatcher, logger *zap.Logger) {
	audit := func(_ context.Context, event events.Event) error {
		logger.Info("account event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("account_id", event.AccountID),
			zap.String("role", string(event.Role)),
		)
		return nil
	}
	dispatcher.Subscribe(events.EventAccountRegistered, audit)
	dispatcher.Subscribe(events.EventAccountLoggedIn, audit)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
