package app

import (
	"bio_olymp_backend/internal/catalog"
	"bio_olymp_backend/internal/config"
	"bio_olymp_backend/internal/controller"
	"bio_olymp_backend/internal/middleware"
	"bio_olymp_backend/internal/repository"
	"bio_olymp_backend/internal/service"
	"bio_olymp_backend/pkg/configwatcher"
	"bio_olymp_backend/pkg/database"
	"bio_olymp_backend/pkg/logger"
	"bio_olymp_backend/pkg/messaging"
	"bio_olymp_backend/pkg/monitoring"
	"bio_olymp_backend/pkg/security"
	"bio_olymp_backend/pkg/tracing"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Store           repository.BlobStore
	Broker          *messaging.RabbitMQClient
	tracer          *sdktrace.TracerProvider
	limiter         *security.RateLimiter
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	progress      *repository.ProgressRepository
	userQuestions *repository.UserQuestionRepository
	feedback      *repository.FeedbackRepository
}

type services struct {
	progress     *service.ProgressService
	questionBank *service.QuestionBankService
	feedback     *service.FeedbackService
	report       *service.ReportService
}

type controllers struct {
	health       *controller.HealthController
	catalog      *controller.CatalogController
	progress     *controller.ProgressController
	feedback     *controller.FeedbackController
	questionBank *controller.QuestionBankController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(store repository.BlobStore, cfg *config.Config) *repositories {
	prefix := cfg.Storage.KeyPrefix
	return &repositories{
		progress:      repository.NewProgressRepository(store, prefix),
		userQuestions: repository.NewUserQuestionRepository(store, prefix),
		feedback:      repository.NewFeedbackRepository(store, prefix),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	cat := catalog.Default()

	questionBank, err := service.NewQuestionBankService(repos.userQuestions, cat, cfg.Analysis.TypePatterns)
	if err != nil {
		return nil, err
	}

	var publisher *service.EventPublisher
	if a.Broker != nil {
		publisher = service.NewEventPublisher(a.Broker, cfg.Messaging.AchievementQueue)
	}

	progress := service.NewProgressService(cat, repos.progress, questionBank, publisher)
	questionBank.OnChange(progress.RefreshAchievements)

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		if err := questionBank.SetTypePatterns(newCfg.Analysis.TypePatterns); err != nil {
			logger.Log.Error("Rejected reloaded type patterns", zap.Error(err))
		}
	})

	return &services{
		progress:     progress,
		questionBank: questionBank,
		feedback:     service.NewFeedbackService(repos.feedback),
		report:       service.NewReportService(progress),
	}, nil
}

func (a *App) initControllers(s *services, cfg *config.Config) *controllers {
	storageType := cfg.Storage.Type
	if cfg.Ephemeral {
		storageType = "memory"
	}
	return &controllers{
		health:       controller.NewHealthController(a.Store, storageType),
		catalog:      controller.NewCatalogController(s.progress.Catalog, s.progress),
		progress:     controller.NewProgressController(s.progress, s.report),
		feedback:     controller.NewFeedbackController(s.feedback),
		questionBank: controller.NewQuestionBankController(s.questionBank),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.limiter = security.NewRateLimiter(cfg.RateLimit)

	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// initBackends opens only the connections the selected storage and
// messaging settings need.
func (a *App) initBackends(cfg *config.Config) error {
	if !cfg.Ephemeral {
		switch cfg.Storage.Type {
		case "database":
			db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
			if err != nil {
				return fmt.Errorf("initialize database: %w", err)
			}
			a.DB = db
		case "redis":
			rdb, err := database.InitRedis(&cfg.Redis)
			if err != nil {
				return fmt.Errorf("initialize redis: %w", err)
			}
			a.Redis = rdb
		}
	}

	store, err := repository.NewBlobStore(cfg, a.DB, a.Redis)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	a.Store = store

	if cfg.Messaging.Enabled {
		client, err := messaging.NewRabbitMQClient(&cfg.Messaging)
		if err != nil {
			return fmt.Errorf("initialize rabbitmq: %w", err)
		}
		if _, err := client.DeclareQueue(cfg.Messaging.AchievementQueue); err != nil {
			client.Close()
			return fmt.Errorf("declare achievement queue: %w", err)
		}
		a.Broker = client
	}
	return nil
}

func NewApp(cfg *config.Config, configDir string) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully",
		zap.String("mode", cfg.Server.Mode),
		zap.String("storage", cfg.Storage.Type),
		zap.Bool("ephemeral", cfg.Ephemeral))

	app := &App{
		Config:    cfg,
		ConfigDir: configDir,
	}
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
	})

	if err := app.initBackends(cfg); err != nil {
		app.Close()
		return nil, err
	}

	repos := app.initRepositories(app.Store, cfg)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.services = services
	controllers := app.initControllers(services, cfg)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(middleware.RequestLogger(), middleware.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	app.registerRoutes(router, controllers)

	return app, nil
}

// Close releases every backend connection opened by NewApp.
func (a *App) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Broker != nil {
		if err := a.Broker.Close(); err != nil {
			logger.Log.Error("Failed to close rabbitmq connection", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if a.ConfigDir != "" {
		go func() {
			if err := configwatcher.WatchConfig(watchCtx, a.ConfigDir, a.applyConfig); err != nil {
				logger.Log.Warn("Config hot reload disabled", zap.Error(err))
			}
		}()
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Failed to listen", zap.Error(err))
		}
	}()

	// wait for a signal, then give in-flight requests 5 seconds
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close()
	logger.Log.Info("Server exiting")
}
