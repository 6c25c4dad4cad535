package app

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz_sphere_backend/internal/config"
	"quiz_sphere_backend/internal/controller"
	"quiz_sphere_backend/internal/repository"
	"quiz_sphere_backend/internal/service"
	"quiz_sphere_backend/internal/util"
	"quiz_sphere_backend/pkg/configwatcher"
	"quiz_sphere_backend/pkg/database"
	"quiz_sphere_backend/pkg/logger"
	"quiz_sphere_backend/pkg/monitoring"
	"quiz_sphere_backend/pkg/security"
	"quiz_sphere_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user     *repository.UserRepository
	token    *repository.TokenRepository
	category *repository.CategoryRepository
	question *repository.QuestionRepository
	attempt  *repository.AttemptRepository
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	storage   *service.StorageService
	category  *service.CategoryService
	question  *service.QuestionService
	attempt   *service.AttemptService
	quiz      *service.QuizService
	standings *service.StandingsService
	ai        *service.AIService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	category  *controller.CategoryController
	admin     *controller.AdminController
	quiz      *controller.QuizController
	assistant *controller.AssistantController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		token:    repository.NewTokenRepository(db),
		category: repository.NewCategoryRepository(db),
		question: repository.NewQuestionRepository(db),
		attempt:  repository.NewAttemptRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, repos.token, cfg)
	s.user = service.NewUserService(repos.user)
	s.category = service.NewCategoryService(repos.category, repos.question, rdb)
	s.question = service.NewQuestionService(repos.question, repos.category)
	s.attempt = service.NewAttemptService(repos.attempt, s.category)
	s.quiz = service.NewQuizService(repos.attempt, s.category, repos.question, rand.NewSource(time.Now().UnixNano()))
	s.standings = service.NewStandingsService(s.category, repos.attempt)
	s.ai = service.NewAIService(cfg.AI)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user, s.storage),
		category:  controller.NewCategoryController(s.category),
		admin:     controller.NewAdminController(s.category, s.question),
		quiz:      controller.NewQuizController(s.attempt, s.quiz, s.standings),
		assistant: controller.NewAssistantController(s.ai),
		health:    controller.NewHealthController(db),
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

// watchConfig picks up credential rotation for the AI endpoint without a
// restart. Other sections still need one.
func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", func() {
		cfg, err := config.LoadConfig("configs")
		if err != nil {
			logger.Log.Error("Config reload failed", zap.Error(err))
			return
		}
		a.services.ai.SetConfig(cfg.AI)
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
		log.Fatalf("Failed to initialize services: %v", err)
	}
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quiz-sphere", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig()

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
