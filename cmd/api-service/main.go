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

	"stock-sentiment-tracker/internal/sentiment/config"
	delivery "stock-sentiment-tracker/internal/sentiment/delivery/http"
	_ "stock-sentiment-tracker/internal/sentiment/docs"
	"stock-sentiment-tracker/internal/sentiment/repository"
	"stock-sentiment-tracker/internal/sentiment/service"
	"stock-sentiment-tracker/pkg/logger"
	"stock-sentiment-tracker/pkg/postgres"
	"stock-sentiment-tracker/pkg/redis"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the sentiment API service",
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

	appLogger.Info("Starting Sentiment API Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		appLogger.Fatal("Failed to get database handle", logger.ErrorField(err))
	}
	defer sqlDB.Close()
	healthChecks := map[string]delivery.Pinger{"database": sqlDB}

	// Initialize Redis
	var summaryCache repository.SummaryCacheRepository
	if cfg.Redis.Host != "" {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		summaryCache = repository.NewSummaryCacheRepository(redisClient.Client)
		healthChecks["redis"] = redisClient
	}

	// Initialize repositories
	dailySentimentRepo := repository.NewDailySentimentRepository(db.DB)
	newsRepo, err := repository.NewNewsRepository(cfg.NewsAPI, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize news repository", logger.ErrorField(err))
	}
	sentimentRepo := repository.NewHuggingFaceRepository(cfg.HuggingFace, appLogger)

	// Initialize summary provider
	var summaryRepo repository.SummaryRepository
	switch cfg.Summary.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		summaryRepo = repository.NewGeminiSummaryRepository(cfg.Gemini, appLogger, genAiClient)
	case "anthropic":
		summaryRepo = repository.NewAnthropicSummaryRepository(cfg.Anthropic, appLogger)
	default:
		appLogger.Fatal("Invalid summary provider specified in config", logger.StringField("provider", cfg.Summary.Provider))
	}

	// Initialize services
	scorer := service.NewSentimentScorer(cfg.HuggingFace, sentimentRepo, appLogger)
	aggregator := service.NewAggregator(scorer)
	historySvc := service.NewHistoryService(dailySentimentRepo)
	summarySvc := service.NewSummaryService(appLogger, newsRepo, summaryRepo, summaryCache, cfg.Summary.MaxHeadlines, cfg.Summary.CacheTTL)
	liveFeedSvc := service.NewLiveFeed(cfg.LiveFeed, appLogger, newsRepo, aggregator)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.API.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")
	delivery.NewHistoryHandler(historySvc, appLogger).RegisterRoutes(apiV1.Group("/history"))
	delivery.NewSummaryHandler(summarySvc, cfg.ResolveTarget, appLogger).RegisterRoutes(apiV1.Group("/summarize"))
	delivery.NewLiveFeedHandler(liveFeedSvc, cfg.ResolveTarget, cfg.LiveFeed, cfg.API.CORSAllowedOrigins, appLogger).
		RegisterRoutes(e.Group("/ws"))
	e.GET("/health", delivery.NewHealthHandler(healthChecks, appLogger).Health)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
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

// @title Stock Sentiment Tracker API
// @version 1.0
// @description Daily and live news sentiment for tracked stock tickers.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
