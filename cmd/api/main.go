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

	httptransport "github.com/Chirag2510/QuizApp-React-DotNet/internal/api/http"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/api/http/handlers"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/auth"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/config"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/events"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/fieldcipher"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/observability"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/persistence"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/repository"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/service"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/session"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var (
		participantRepo repository.ParticipantRepository
		questionRepo    repository.QuestionRepository
	)
	if pg.Enabled() {
		participantRepo = repository.NewParticipantRepository(pg.PoolHandle())
		questionRepo = repository.NewQuestionRepository(pg.PoolHandle())
	} else {
		participantRepo = repository.NewMemoryParticipantRepository()
		questionRepo = repository.NewMemoryQuestionRepository()
	}

	var (
		redis    *persistence.Redis
		sessions session.Store
	)
	if cfg.Session.Backend == config.SessionBackendRedis {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		sessions = session.NewRedisStore(redis.Client)
	} else {
		sessions = session.NewMemoryStore()
	}

	cipher, err := fieldcipher.New(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to init field cipher", zap.Error(err))
	}
	tokens := auth.NewTokenManager(cfg.Auth)
	metrics := observability.NewMetrics()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	participantService := service.NewParticipantService(service.ParticipantDependencies{
		ParticipantRepo: participantRepo,
		Hasher:          auth.NewPasswordHasher(cfg.Auth),
		Tokens:          tokens,
		Cipher:          cipher,
		Sessions:        sessions,
		SessionTTL:      cfg.Session.TTL(),
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	questionService := service.NewQuestionService(service.QuestionDependencies{
		QuestionRepo: questionRepo,
		PerRound:     cfg.Quiz.QuestionsPer,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	if _, err := questionService.Seed(ctx, cfg.Quiz.SeedFile); err != nil {
		logger.Fatal("failed to seed questions", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: !cfg.App.IsDevelopment(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.IsDevelopment())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Participants: handlers.NewParticipantsHandler(participantService, handlers.SessionCookie{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL(),
			Secure: !cfg.App.IsDevelopment(),
		}),
		Questions:      handlers.NewQuestionsHandler(questionService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, logger, metrics),
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
