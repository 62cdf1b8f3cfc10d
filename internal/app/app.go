package app

import (
	"learning_coach_backend/internal/config"
	"learning_coach_backend/internal/controller"
	"learning_coach_backend/internal/repository"
	"learning_coach_backend/internal/service"
	"learning_coach_backend/pkg/configwatcher"
	"learning_coach_backend/pkg/database"
	"learning_coach_backend/pkg/logger"
	"learning_coach_backend/pkg/monitoring"
	"learning_coach_backend/pkg/security"
	"learning_coach_backend/pkg/tracing"
	"context"
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
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	quizScore   *repository.QuizScoreRepository
	studyPlan   *repository.StudyPlanRepository
	integration *repository.IntegrationRepository
}

type services struct {
	storage     *service.StorageService
	auth        *service.AuthService
	user        *service.UserService
	ai          *service.AIService
	github      *service.GitHubService
	udemy       *service.UdemyService
	calendar    *service.CalendarService
	integration *service.IntegrationService
	plan        *service.PlanService
	quiz        *service.QuizService
	analytics   *service.AnalyticsService
	insights    *service.InsightsService
	report      *service.ReportService
	dashboard   *service.DashboardService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	plan        *controller.PlanController
	quiz        *controller.QuizController
	analytics   *controller.AnalyticsController
	insights    *controller.InsightsController
	integration *controller.IntegrationController
	report      *controller.ReportController
	ai          *controller.AIController
	dashboard   *controller.DashboardController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		quizScore:   repository.NewQuizScoreRepository(db),
		studyPlan:   repository.NewStudyPlanRepository(db),
		integration: repository.NewIntegrationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.ai = service.NewAIService(cfg.AI)

	s.github = service.NewGitHubService(cfg.Integrations)
	s.udemy = service.NewUdemyService(cfg.Integrations)
	s.calendar = service.NewCalendarService(cfg.Integrations)
	s.integration = service.NewIntegrationService(repos.integration, s.github, s.udemy, s.calendar, rdb)

	s.plan = service.NewPlanService(repos.studyPlan, s.ai)
	s.quiz = service.NewQuizService(repos.quizScore, s.ai, rdb)
	s.analytics = service.NewAnalyticsService(repos.quizScore)
	s.insights = service.NewInsightsService(repos.integration)
	s.report = service.NewReportService(repos.user, repos.quizScore, repos.studyPlan, s.storage)
	s.dashboard = service.NewDashboardService(repos.quizScore, repos.studyPlan, repos.integration)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		plan:        controller.NewPlanController(s.plan),
		quiz:        controller.NewQuizController(s.quiz),
		analytics:   controller.NewAnalyticsController(s.analytics),
		insights:    controller.NewInsightsController(s.insights),
		integration: controller.NewIntegrationController(s.integration),
		report:      controller.NewReportController(s.report),
		ai:          controller.NewAIController(s.ai),
		dashboard:   controller.NewDashboardController(s.dashboard),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 6000 // 每分钟6000次请求
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

func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(newCfg interface{}) {
		cfg, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("Config reloaded")
		a.Config = cfg
		for _, callback := range a.configCallbacks {
			callback(cfg)
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
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
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("learning-coach", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
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
