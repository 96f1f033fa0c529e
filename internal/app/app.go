package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"remedial_edu_backend/internal/config"
	"remedial_edu_backend/internal/controller"
	"remedial_edu_backend/internal/repository"
	"remedial_edu_backend/internal/service"
	"remedial_edu_backend/pkg/database"
	"remedial_edu_backend/pkg/logger"
	"remedial_edu_backend/pkg/monitoring"
	"remedial_edu_backend/pkg/security"
	"remedial_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	user       *repository.UserRepository
	student    *repository.StudentRepository
	assessment *repository.AssessmentRepository
	attempt    *repository.AttemptRepository
	attendance *repository.AttendanceRepository
	material   *repository.MaterialRepository
	approval   *repository.ApprovalRepository
}

type services struct {
	auth       *service.AuthService
	student    *service.StudentService
	assessment *service.AssessmentService
	attempt    *service.AttemptService
	attendance *service.AttendanceService
	material   *service.MaterialService
	approval   *service.ApprovalService
}

type controllers struct {
	auth       *controller.AuthController
	student    *controller.StudentController
	assessment *controller.AssessmentController
	attempt    *controller.AttemptController
	attendance *controller.AttendanceController
	material   *controller.MaterialController
	approval   *controller.ApprovalController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		student:    repository.NewStudentRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		attempt:    repository.NewAttemptRepository(db),
		attendance: repository.NewAttendanceRepository(db),
		material:   repository.NewMaterialRepository(db),
		approval:   repository.NewApprovalRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage provider", zap.Error(err))
	}

	var lock service.AdvisoryLock
	if rdb != nil {
		lock = &repository.RedisLock{Client: rdb}
	}

	return &services{
		auth:       service.NewAuthService(repos.user, cfg),
		student:    service.NewStudentService(repos.student),
		assessment: service.NewAssessmentService(repos.assessment, rdb, cfg),
		attempt:    service.NewAttemptService(repos.assessment, repos.attempt, repos.student, lock, rdb, cfg),
		attendance: service.NewAttendanceService(repos.attendance, repos.student),
		material:   service.NewMaterialService(repos.material, storage),
		approval:   service.NewApprovalService(repos.approval, repos.attempt),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		student:    controller.NewStudentController(s.student),
		assessment: controller.NewAssessmentController(s.assessment),
		attempt:    controller.NewAttemptController(s.attempt),
		attendance: controller.NewAttendanceController(s.attendance),
		material:   controller.NewMaterialController(s.material),
		approval:   controller.NewApprovalController(s.approval),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
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
	logger.InitLogger(cfg.Server.Mode)
	logger.Log.Info("Logger initialized")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	// A down redis disables the advisory lock and code cache but the app
	// still serves.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, running without cache and attempt lock", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	ctls := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router
	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("remedial-lms", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, ctls, repos, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// ApplyConfig picks up the hot-reloadable settings after a config file change.
// Connection-level settings still require a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.Assessment = cfg.Assessment
	a.Config.JWT.ExpireTime = cfg.JWT.ExpireTime
	logger.Log.Info("Applied reloaded configuration",
		zap.Int("accessCodeLength", cfg.Assessment.AccessCodeLength),
		zap.Int("attemptLockSeconds", cfg.Assessment.AttemptLockSeconds),
		zap.Int("codeCacheSeconds", cfg.Assessment.CodeCacheSeconds),
	)
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

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
