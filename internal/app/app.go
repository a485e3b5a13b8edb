package app

import (
	"context"
	"exam_studio_backend/internal/config"
	"exam_studio_backend/internal/controller"
	"exam_studio_backend/internal/repository"
	"exam_studio_backend/internal/service"
	"exam_studio_backend/pkg/database"
	"exam_studio_backend/pkg/logger"
	"exam_studio_backend/pkg/monitoring"
	"exam_studio_backend/pkg/security"
	"exam_studio_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config  *config.Config
	Router  *gin.Engine
	DB      *gorm.DB
	Redis   *redis.Client
	Origins *security.OriginSet
}

type repositories struct {
	user       *repository.UserRepository
	exam       *repository.ExamRepository
	expression *repository.ExpressionRepository
	question   *repository.QuestionRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	storage    *service.StorageService
	exam       *service.ExamService
	expression *service.ExpressionService
	question   *service.QuestionService
	dictionary *service.DictionaryService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	exam       *controller.ExamController
	expression *controller.ExpressionController
	question   *controller.QuestionController
	dictionary *controller.DictionaryController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		exam:       repository.NewExamRepository(db),
		expression: repository.NewExpressionRepository(db),
		question:   repository.NewQuestionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.exam = service.NewExamService(repos.exam, rdb)
	s.expression = service.NewExpressionService(repos.expression, repos.exam)
	s.question = service.NewQuestionService(repos.question, repos.exam)
	s.dictionary = service.NewDictionaryService(&cfg.Locale, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user, s.storage),
		exam:       controller.NewExamController(s.exam),
		expression: controller.NewExpressionController(s.expression),
		question:   controller.NewQuestionController(s.question),
		dictionary: controller.NewDictionaryController(s.dictionary),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(a.Origins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ApplyConfig 配置热重载回调，目前只替换 CORS 白名单
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Origins.Replace(cfg.CORS.AllowedOrigins)
	logger.Log.Info("Config reloaded", zap.Strings("allowed_origins", cfg.CORS.AllowedOrigins))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, database.ShouldMigrate(cfg))
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		Origins: security.NewOriginSet(cfg.CORS.AllowedOrigins),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("exam-studio", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
