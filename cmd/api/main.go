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

	httptransport "github.com/Nikhilkrishnapk/complaint-hub/internal/api/http"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/api/http/handlers"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/auth"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/config"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/events"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/observability"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/persistence"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/repository"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/service"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/worker"
)

const shutdownTimeout = 10 * time.Second

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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics("complaint_hub")

	pool := pg.PoolHandle()
	complaintRepo := repository.NewComplaintRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	credentialRepo := repository.NewCredentialRepository(pool)

	revoker := auth.NewRedisRevoker(redis.Client, cfg.Redis.KeyPrefix)
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, metrics, cfg.Notification))

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		CredentialRepo: credentialRepo,
		ProfileRepo:    profileRepo,
		Revoker:        revoker,
	})
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: complaintRepo,
		CommentRepo:   commentRepo,
		Policy:        auth.NewPolicy(cfg.Complaints.StatusPolicy),
		Dispatcher:    dispatcher,
	})
	dashboardService := service.NewDashboardService(complaintService)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSAllowOrigins)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Shell:      handlers.NewShellHandler(),
		Auth:       handlers.NewAuthHandler(authService),
		Dashboard:  handlers.NewDashboardHandler(dashboardService),
		Complaints: handlers.NewComplaintsHandler(complaintService),
		Session:    auth.NewSessionMiddleware(authService.TokenManager(), revoker, profileRepo),
		Metrics:    metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("complaint hub started",
		zap.String("addr", cfg.App.Addr()),
		zap.String("status_policy", cfg.Complaints.StatusPolicy))

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
