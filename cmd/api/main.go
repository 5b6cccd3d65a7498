package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/aydocorp/portal-api/internal/api/http"
	"github.com/aydocorp/portal-api/internal/api/http/handlers"
	"github.com/aydocorp/portal-api/internal/auth"
	"github.com/aydocorp/portal-api/internal/config"
	"github.com/aydocorp/portal-api/internal/events"
	"github.com/aydocorp/portal-api/internal/gsuite"
	"github.com/aydocorp/portal-api/internal/observability"
	"github.com/aydocorp/portal-api/internal/persistence"
	"github.com/aydocorp/portal-api/internal/repository"
	"github.com/aydocorp/portal-api/internal/service"
	syncpkg "github.com/aydocorp/portal-api/internal/sync"
	"github.com/aydocorp/portal-api/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	careerPathRepo := repository.NewCareerPathRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	operationRepo := repository.NewOperationRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo, logger)
	if err := authService.EnsureBootstrapAdmin(ctx); err != nil {
		logger.Fatal("failed to ensure bootstrap admin", zap.Error(err))
	}
	orgService := service.NewOrgService(service.OrgDependencies{
		EmployeeRepo:   employeeRepo,
		CareerPathRepo: careerPathRepo,
		EventRepo:      eventRepo,
		OperationRepo:  operationRepo,
	})
	notificationService := service.NewNotificationService(dispatcher, logger)
	notificationService.RegisterHandlers()

	var sheet syncpkg.EmployeeSheetSource
	if cfg.Google.CredentialsJSON != "" && cfg.Google.EmployeeSpreadsheetID != "" {
		employeeSheet, err := gsuite.NewEmployeeSheet(ctx, cfg.Google.CredentialsJSON, cfg.Google.EmployeeSpreadsheetID, cfg.Google.EmployeeSheetName)
		if err != nil {
			logger.Fatal("failed to init sheets client", zap.Error(err))
		}
		sheet = employeeSheet
	} else {
		logger.Warn("employee sheet not configured; employee sync disabled")
	}

	var docs syncpkg.OrgDocsSource
	if cfg.Google.CredentialsJSON != "" {
		orgDocs, err := gsuite.NewOrgDocs(ctx, cfg.Google.CredentialsJSON)
		if err != nil {
			logger.Fatal("failed to init docs client", zap.Error(err))
		}
		docs = orgDocs
	} else {
		logger.Warn("google credentials not configured; document sync disabled")
	}

	statusCache := syncpkg.NewStatusCache(redis.Client, time.Duration(cfg.Sync.StatusCacheTTLMinutes)*time.Minute)
	syncService := syncpkg.NewService(cfg.Google, syncpkg.Dependencies{
		Users:       userRepo,
		Employees:   employeeRepo,
		CareerPaths: careerPathRepo,
		Events:      eventRepo,
		Operations:  operationRepo,
		Sheet:       sheet,
		Docs:        docs,
		Cache:       statusCache,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
	}, logger)

	scheduler := worker.NewScheduler(logger)
	if cfg.Sync.Enabled {
		registerSyncJobs(scheduler, syncService, cfg.Sync, logger)
		scheduler.Start(ctx)
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Sync:           handlers.NewSyncHandler(syncService, statusCache),
		Employees:      handlers.NewEmployeesHandler(orgService),
		CareerPaths:    handlers.NewCareerPathsHandler(orgService),
		Events:         handlers.NewEventsHandler(orgService),
		Operations:     handlers.NewOperationsHandler(orgService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	scheduler.Stop()
	_ = app.Shutdown()
}

func registerSyncJobs(scheduler *worker.Scheduler, syncService *syncpkg.Service, cfg config.SyncConfig, logger *zap.Logger) {
	jobs := []struct {
		name        string
		intervalMin int
		offsetMin   int
		run         func(context.Context) (syncpkg.Result, error)
	}{
		{"sync-employees", cfg.EmployeeIntervalMin, cfg.EmployeeOffsetMin, syncService.SyncEmployees},
		{"sync-career-paths", cfg.CareerPathIntervalMin, cfg.CareerPathOffsetMin, syncService.SyncCareerPaths},
		{"sync-events", cfg.EventIntervalMin, cfg.EventOffsetMin, syncService.SyncEvents},
		{"sync-operations", cfg.OperationIntervalMin, cfg.OperationOffsetMin, syncService.SyncOperations},
	}
	for _, job := range jobs {
		run := job.run
		name := job.name
		scheduler.Register(name,
			time.Duration(job.intervalMin)*time.Minute,
			time.Duration(job.offsetMin)*time.Minute,
			func(ctx context.Context) {
				if _, err := run(ctx); err != nil {
					logger.Warn("scheduled sync pass failed", zap.String("job", name), zap.Error(err))
				}
			})
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
