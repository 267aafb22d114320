package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/minutetrack/minute-tracker/pkg/validator"

	"github.com/minutetrack/minute-tracker/internal/adapter/handler"
	"github.com/minutetrack/minute-tracker/internal/adapter/repository"
	"github.com/minutetrack/minute-tracker/internal/infrastructure/cache"
	"github.com/minutetrack/minute-tracker/internal/infrastructure/database"
	"github.com/minutetrack/minute-tracker/internal/infrastructure/storage"
	"github.com/minutetrack/minute-tracker/internal/usecase/extract"
	"github.com/minutetrack/minute-tracker/internal/usecase/ingest"
	"github.com/minutetrack/minute-tracker/internal/usecase/pipeline"
	"github.com/minutetrack/minute-tracker/internal/usecase/report"
	pkgai "github.com/minutetrack/minute-tracker/pkg/ai"
	"github.com/minutetrack/minute-tracker/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis (mirrors job progress; the in-process registry stays
	// authoritative, so a missing Redis is not fatal)
	log.Println("📦 Connecting to Redis...")
	var mirror ingest.ProgressMirror
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Printf("⚠️  Redis unavailable, mirroring job progress in memory: %v", err)
		mirror = cache.NewMemoryStore()
	} else {
		defer redisClient.Close()
		mirror = redisClient
	}

	// Initialize object storage
	log.Println("📦 Connecting to object storage...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	actionRepo := repository.NewActionRepository(db)

	// Initialize AI clients and pipeline stages
	log.Println("🤖 Initializing pipeline stages...")
	asmClient := pkgai.NewAssemblyAIClient(&cfg.Assembly)
	groqClient := pkgai.NewGroqClient(&cfg.Groq)

	speechEngine := pipeline.NewSpeechEngine(asmClient, logger)
	minutesStage := pipeline.NewMinutesStage(groqClient, logger)
	extractEngine := extract.NewEngine(cfg.Extractor.ConfidenceThreshold, logger)
	mediaValidator := pipeline.NewMediaValidator(cfg.Pipeline.MaxFileSize)

	// Initialize ingestion coordinator
	log.Println("🎙️  Initializing ingestion coordinator...")
	coordinator := ingest.NewCoordinator(
		mediaValidator,
		speechEngine,
		speechEngine,
		minutesStage,
		extractEngine,
		meetingRepo,
		minioClient,
		mirror,
		logger,
		ingest.Options{
			QueueSize:    cfg.Pipeline.QueueSize,
			StageTimeout: cfg.Pipeline.StageTimeout,
		},
	)
	coordinator.Start()
	defer coordinator.Stop()

	// Initialize handlers
	log.Println("🚪 Initializing handlers...")
	exporter := report.NewExporter()
	meetingHandler := handler.NewMeetingHandler(coordinator, meetingRepo, actionRepo, exporter, cfg.Pipeline.UploadDir, logger)
	actionHandler := handler.NewActionHandler(actionRepo, logger)
	log.Println("✅ Handlers initialized successfully")

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, meetingHandler, actionHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
