package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stock-sentiment-tracker/internal/sentiment/config"
	"stock-sentiment-tracker/internal/sentiment/repository"
	"stock-sentiment-tracker/internal/sentiment/service"
	"stock-sentiment-tracker/pkg/logger"
	"stock-sentiment-tracker/pkg/postgres"
	"stock-sentiment-tracker/pkg/redis"
	"stock-sentiment-tracker/pkg/telegram"
	"stock-sentiment-tracker/pkg/utils"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var configPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collects today's sentiment for every target once and exits",
	Run:   runOnce,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the collector and runs it on the configured cron schedule",
	Run:   runServe,
}

type collectorApp struct {
	cfg       *config.Config
	logger    *logger.Logger
	collector service.BatchCollector
	closers   []func()
}

func (a *collectorApp) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.logger.Sync()
}

func setup(ctx context.Context) *collectorApp {
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
	app := &collectorApp{cfg: cfg, logger: appLogger}

	appLogger.Info("Starting Collector Service", logger.Field("name", cfg.App.Name))

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
	if sqlDB, err := db.DB.DB(); err == nil {
		app.closers = append(app.closers, func() { _ = sqlDB.Close() })
	}

	// Initialize repositories
	dailySentimentRepo := repository.NewDailySentimentRepository(db.DB)
	if err := dailySentimentRepo.EnsureSchema(ctx); err != nil {
		appLogger.Fatal("Failed to prepare daily_sentiment schema", logger.ErrorField(err))
	}
	newsRepo, err := repository.NewNewsRepository(cfg.NewsAPI, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize news repository", logger.ErrorField(err))
	}
	sentimentRepo := repository.NewHuggingFaceRepository(cfg.HuggingFace, appLogger)

	var opts []service.BatchCollectorOption

	// Initialize Redis
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
		app.closers = append(app.closers, func() { _ = redisClient.Close() })
		opts = append(opts, service.WithRunLock(repository.NewRunLockRepository(redisClient.Client)))
	}

	if cfg.Telegram.Enabled {
		telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
		opts = append(opts, service.WithNotifier(telegramNotifier))
	}

	// Initialize services
	scorer := service.NewSentimentScorer(cfg.HuggingFace, sentimentRepo, appLogger)
	aggregator := service.NewAggregator(scorer)
	app.collector = service.NewBatchCollector(cfg, appLogger, newsRepo, aggregator, dailySentimentRepo, opts...)

	return app
}

func runOnce(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := setup(ctx)
	defer app.Close()

	if _, err := app.collector.Run(ctx); err != nil {
		app.logger.Error("Collector run failed", logger.ErrorField(err))
		app.Close()
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := setup(ctx)
	defer app.Close()

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	scheduler := cron.New(
		cron.WithParser(parser),
		cron.WithLocation(utils.LoadLocation(app.cfg.App.Timezone)),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	_, err := scheduler.AddFunc(app.cfg.Collector.Cron, func() {
		if _, err := app.collector.Run(ctx); err != nil {
			app.logger.Error("Scheduled collector run failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		app.logger.Fatal("Invalid collector cron expression", logger.ErrorField(err), logger.StringField("cron", app.cfg.Collector.Cron))
	}

	scheduler.Start()
	app.logger.Info("Collector scheduled", logger.StringField("cron", app.cfg.Collector.Cron))

	// Wait for shutdown signal
	<-ctx.Done()

	app.logger.Info("Shutting down collector...")
	<-scheduler.Stop().Done()
	app.logger.Info("Collector exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "collector-service"}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(runCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing collector-service CLI: %s\n", err)
		os.Exit(1)
	}
}
