package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ga-helpdesk/internal/api/http"
	"github.com/spec-kit/ga-helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/ga-helpdesk/internal/auth"
	"github.com/spec-kit/ga-helpdesk/internal/config"
	"github.com/spec-kit/ga-helpdesk/internal/domain"
	"github.com/spec-kit/ga-helpdesk/internal/events"
	"github.com/spec-kit/ga-helpdesk/internal/observability"
	"github.com/spec-kit/ga-helpdesk/internal/persistence"
	"github.com/spec-kit/ga-helpdesk/internal/repository"
	"github.com/spec-kit/ga-helpdesk/internal/service"
	"github.com/spec-kit/ga-helpdesk/internal/worker"
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

	schema, ok := domain.SchemaByName(cfg.Storage.SchemaVariant)
	if !ok {
		logger.Fatal("unknown schema variant", zap.String("variant", cfg.Storage.SchemaVariant))
	}

	adminHash, err := auth.HashPassword(cfg.Auth.DefaultAdminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash default admin password", zap.Error(err))
	}

	ticketsTable := persistence.NewTable(cfg.Storage.TicketsPath(), schema.Ticket.Names(), logger)
	accountsTable := persistence.NewTable(cfg.Storage.AccountsPath(), domain.AccountColumns(), logger).
		WithSeed(repository.SeedRecord(cfg.Auth.DefaultAdminUser, adminHash))
	activityTable := persistence.NewTable(cfg.Storage.ActivityPath(), domain.ActivityColumns(), logger)

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	ticketRepo := repository.NewTicketRepository(ticketsTable, schema)
	accountRepo := repository.NewAccountRepository(accountsTable)
	activityRepo := repository.NewActivityRepository(activityTable)

	dispatcher := events.NewInMemoryDispatcher()

	accountService := service.NewAccountService(cfg.Auth, schema, accountRepo)
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Directory:    accountService,
		ActivityRepo: activityRepo,
		Dispatcher:   dispatcher,
	})
	ticketService := service.NewTicketService(ticketRepo, schema, dispatcher)
	reportService := service.NewReportService(ticketRepo, redis, cfg.Redis.CacheTTL(), logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService, reportService, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, ticketsTable, redis, cfg.Redis.Enabled()),
		Auth:           handlers.NewAuthHandler(authService, accountService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Accounts:       handlers.NewAccountsHandler(accountService, activityRepo),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
