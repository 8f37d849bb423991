package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artscore_backend/internal/config"
	"artscore_backend/internal/controller"
	"artscore_backend/internal/repository"
	"artscore_backend/internal/service"
	"artscore_backend/pkg/database"
	"artscore_backend/pkg/logger"
	"artscore_backend/pkg/monitoring"
	"artscore_backend/pkg/security"
	"artscore_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	lead      *repository.LeadRepository
	setting   *repository.SettingRepository
	catalog   *repository.CatalogRepository
	session   *repository.QuizSessionRepository
	score     *repository.ScoreRepository
	analytics *repository.AnalyticsRepository
}

type services struct {
	storage      *service.StorageService
	mailer       *service.MailerService
	auth         *service.AuthService
	user         *service.UserService
	lead         *service.LeadService
	settings     *service.SettingsService
	catalog      *service.CatalogService
	scoring      *service.ScoringService
	insights     *service.InsightsService
	orchestrator *service.Orchestrator
	report       *service.ReportService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	lead     *controller.LeadController
	settings *controller.SettingsController
	catalog  *controller.CatalogController
	quiz     *controller.QuizController
	session  *controller.SessionController
	report   *controller.ReportController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig fans a reloaded configuration out to everything that
// registered interest in it.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		lead:      repository.NewLeadRepository(db),
		setting:   repository.NewSettingRepository(db),
		catalog:   repository.NewCatalogRepository(db),
		session:   repository.NewQuizSessionRepository(db),
		score:     repository.NewScoreRepository(db),
		analytics: repository.NewAnalyticsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.mailer = service.NewMailerService(&cfg.Mail)
	s.auth = service.NewAuthService(repos.user, s.mailer, cfg)
	s.user = service.NewUserService(repos.user)
	s.lead = service.NewLeadService(repos.lead, repos.user, s.mailer)
	s.settings = service.NewSettingsService(repos.setting)
	s.catalog = service.NewCatalogService(repos.catalog, rdb)
	s.scoring = service.NewScoringService(repos.score, repos.catalog, repos.session, repos.analytics)
	s.insights = service.NewInsightsService(repos.analytics)
	s.orchestrator = service.NewOrchestrator(repos.session, repos.score, repos.catalog, cfg.Quiz)
	s.report = service.NewReportService(s.orchestrator, s.lead, s.storage)

	// Orchestration constants are hot-reloadable.
	a.RegisterConfigCallback(func(next *config.Config) {
		s.orchestrator.Quiz = next.Quiz
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth, s.user, a.Config),
		user:     controller.NewUserController(s.user),
		lead:     controller.NewLeadController(s.lead),
		settings: controller.NewSettingsController(s.settings),
		catalog:  controller.NewCatalogController(s.catalog),
		quiz:     controller.NewQuizController(s.scoring, s.insights),
		session:  controller.NewSessionController(s.orchestrator),
		report:   controller.NewReportController(s.report),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Catalog caching degrades gracefully without redis.
		logger.Log.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("artscore", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type != "minio" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, os.ModePerm)
		}
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
