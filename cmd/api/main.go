package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/project-board/internal/ai"
	httptransport "github.com/spec-kit/project-board/internal/api/http"
	"github.com/spec-kit/project-board/internal/api/http/handlers"
	"github.com/spec-kit/project-board/internal/auth"
	"github.com/spec-kit/project-board/internal/config"
	"github.com/spec-kit/project-board/internal/confirm"
	"github.com/spec-kit/project-board/internal/events"
	"github.com/spec-kit/project-board/internal/observability"
	"github.com/spec-kit/project-board/internal/persistence"
	"github.com/spec-kit/project-board/internal/repository"
	"github.com/spec-kit/project-board/internal/service"
	"github.com/spec-kit/project-board/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	pool := pg.PoolHandle()
	memberRepo := repository.NewMemberRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	updateRepo := repository.NewStatusUpdateRepository(pool)

	gate := confirm.NewGate(redis.Client, cfg.Auth.ConfirmTTL())

	teamService := service.NewTeamService(service.TeamDependencies{
		MemberRepo: memberRepo,
		TaskRepo:   taskRepo,
		Gate:       gate,
		Invites:    redis.Client,
		InviteTTL:  cfg.Auth.InviteTTL(),
		Dispatcher: dispatcher,
	})
	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:   taskRepo,
		MemberRepo: memberRepo,
		Dispatcher: dispatcher,
	})
	updateService := service.NewStatusUpdateService(updateRepo, dispatcher, nil)
	authService := service.NewAuthService(*cfg, memberRepo, teamService)

	var generator ai.Generator
	if client, err := ai.NewClient(cfg.AI); err == nil {
		generator = client
	} else if errors.Is(err, ai.ErrNoCredential) {
		logger.Warn("AI credential not configured; suggestion endpoints run degraded")
	} else {
		logger.Fatal("failed to init AI client", zap.Error(err))
	}
	suggestionService := service.NewSuggestionService(generator, redis.Client, cfg.AI.CacheTTL(), logger)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), memberRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Team:           handlers.NewTeamHandler(teamService),
		Tasks:          handlers.NewTasksHandler(taskService),
		StatusUpdates:  handlers.NewStatusUpdatesHandler(updateService),
		Suggestions:    handlers.NewSuggestionsHandler(suggestionService),
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

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
