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

	"review-insight/internal/insight/config"
	delivery "review-insight/internal/insight/delivery/http"
	"review-insight/internal/insight/repository"
	"review-insight/internal/insight/service"
	"review-insight/pkg/logger"
	"review-insight/pkg/postgres"
	"review-insight/pkg/redis"
	"review-insight/pkg/telegram"
	"review-insight/pkg/textnorm"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the review insight API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Review Insight API", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	reviewRepo := repository.NewReviewRepository(db.DB)
	aspectRepo := repository.NewAspectCategoryRepository(db.DB)
	systemLogRepo := repository.NewSystemLogRepository(db.DB)
	feedbackRepo := repository.NewModelFeedbackRepository(db.DB)

	// Initialize the sentiment classifier
	var classifier repository.SentimentClassifier
	switch cfg.Classifier.Provider {
	case "huggingface":
		classifier = repository.NewHuggingFaceRepository(cfg, appLogger)
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini client", logger.ErrorField(err))
		}
		classifier = repository.NewGeminiRepository(cfg, appLogger, genAiClient)
	case "vader", "":
		classifier = repository.NewVaderRepository()
	default:
		appLogger.Fatal("Invalid classifier provider specified in config", logger.Field("provider", cfg.Classifier.Provider))
	}

	// Initialize the text normalizer
	normalizer, err := textnorm.New()
	if err != nil {
		appLogger.Fatal("Failed to initialize text normalizer", logger.ErrorField(err))
	}

	// Initialize the Telegram notifier. An empty bot token disables it.
	var notifier telegram.Notifier = telegram.NoopNotifier{}
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	analyzerSvc := service.NewAnalyzerService(aspectRepo, classifier, redisClient.Client, appLogger, cfg.Analyzer.MaxConcurrentReviews, cfg.Analyzer.CacheTTL)
	reviewSvc := service.NewReviewService(reviewRepo, systemLogRepo, classifier, analyzerSvc, normalizer, notifier, appLogger)
	reportSvc := service.NewReportService(reviewRepo, analyzerSvc, appLogger)
	monitoringSvc := service.NewMonitoringService(reviewRepo, systemLogRepo, feedbackRepo, classifier, appLogger)

	// Schedule the daily stats snapshot
	cronRunner := cron.New()
	if _, err := cronRunner.AddFunc("0 0 * * *", func() {
		if err := monitoringSvc.LogDailyStats(context.Background()); err != nil {
			appLogger.Error("Failed to log daily stats", logger.ErrorField(err))
		}
	}); err != nil {
		appLogger.Fatal("Failed to schedule daily stats job", logger.ErrorField(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	reviewHandler := delivery.NewReviewHandler(reviewSvc, appLogger)
	reviewHandler.RegisterRoutes(apiV1.Group("/reviews"))

	analyticsHandler := delivery.NewAnalyticsHandler(analyzerSvc, reviewRepo, appLogger)
	analyticsHandler.RegisterRoutes(apiV1.Group("/analytics"))

	aspectHandler := delivery.NewAspectCategoryHandler(aspectRepo, appLogger)
	aspectHandler.RegisterRoutes(apiV1.Group("/aspect-categories"))

	reportHandler := delivery.NewReportHandler(reportSvc, appLogger)
	reportHandler.RegisterRoutes(apiV1.Group("/reports"))

	monitoringHandler := delivery.NewMonitoringHandler(monitoringSvc, appLogger)
	monitoringHandler.RegisterRoutes(apiV1.Group("/monitoring"))

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
