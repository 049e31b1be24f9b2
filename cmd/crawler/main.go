package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"exhibition_crawler/internal/browse"
	"exhibition_crawler/internal/config"
	"exhibition_crawler/internal/export"
	"exhibition_crawler/internal/publisher"
	"exhibition_crawler/internal/scheduler"
	"exhibition_crawler/internal/service"
	"exhibition_crawler/internal/source/gallery"
	"exhibition_crawler/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize RabbitMQ publisher when enabled
	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	// Initialize store and transaction manager
	exhibitionStore := postgres.NewExhibitionStore(db)
	txManager := postgres.NewTransactionManager(db)

	// One browser per engine, shared across the sources that use it.
	// The headless browser is only launched when a source needs it.
	staticBrowser := browse.NewStaticBrowser(browse.StaticConfig{
		Timeout: cfg.Crawl.NavigationTimeout,
	}, logger)

	var rodBrowser *browse.RodBrowser
	for _, profile := range cfg.Sources {
		if profile.Engine == browse.EngineBrowser {
			rodBrowser, err = browse.NewRodBrowser(browse.RodConfig{
				Stealth: cfg.Crawl.Stealth,
			}, logger)
			if err != nil {
				logger.Error("failed to launch browser", "error", err)
				os.Exit(1)
			}
			defer rodBrowser.Close()
			break
		}
	}

	opts := gallery.Options{
		NavigationTimeout: cfg.Crawl.NavigationTimeout,
		SettleDelay:       cfg.Crawl.SettleDelay,
	}

	sources := make([]service.Source, 0, len(cfg.Sources))
	for _, profile := range cfg.Sources {
		var browser browse.Browser = staticBrowser
		if profile.Engine == browse.EngineBrowser {
			browser = rodBrowser
		}
		sources = append(sources, gallery.New(profile, browser, opts, logger))
	}

	var exporter service.Exporter
	if cfg.Crawl.ExportDir != "" {
		exporter = export.NewJSONExporter(cfg.Crawl.ExportDir, logger)
	}

	crawlService := service.NewCrawlService(
		sources,
		exhibitionStore,
		txManager,
		pub,
		exporter,
		logger,
	)

	sched := scheduler.NewScheduler(crawlService, cfg.Crawl.Interval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting exhibition crawler",
		"sources", len(sources),
		"interval", cfg.Crawl.Interval,
		"publish", cfg.RabbitMQ.Enabled,
	)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
