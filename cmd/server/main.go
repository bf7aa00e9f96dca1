package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"homeserve.backend/internal/config"
	"homeserve.backend/internal/infrastructure/jobs"
	"homeserve.backend/internal/infrastructure/notify"
	"homeserve.backend/internal/infrastructure/repositories"
	"homeserve.backend/internal/infrastructure/storage"
	"homeserve.backend/internal/interfaces/http/handlers"
	"homeserve.backend/internal/interfaces/http/middleware"
	"homeserve.backend/internal/usecases"
	"homeserve.backend/pkg/jwt"
	"homeserve.backend/pkg/logger"
	"homeserve.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	providerRepo := repositories.NewProviderRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize file storage and background cleanup
	fileStorage, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}
	cleanupJob := jobs.NewStorageCleanupJob(fileStorage, cfg.Storage.CleanupInterval)

	// Initialize notifier
	notifier := notify.NewRedisNotifier()

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, providerRepo, uow, jwtService)
	verificationUsecase := usecases.NewVerificationUsecase(providerRepo, uow, fileStorage, cleanupJob, notifier)
	bookingUsecase := usecases.NewBookingUsecase(bookingRepo, serviceRepo, providerRepo, uow, notifier)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	documentHandler := handlers.NewDocumentHandler(verificationUsecase)
	adminHandler := handlers.NewAdminHandler(verificationUsecase)
	bookingHandler := handlers.NewBookingHandler(bookingUsecase)

	// Create auth middleware
	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go cleanupJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:     authHandler,
		documentHandler: documentHandler,
		adminHandler:    adminHandler,
		bookingHandler:  bookingHandler,
		authMiddleware:  authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		cleanupJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 HomeServe Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
