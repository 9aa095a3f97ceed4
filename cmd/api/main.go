package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/api/rest"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/api/websocket"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/auth"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/cache"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/config"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/database"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/repository"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/telemetry"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/metrics"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/analytics"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/disposition"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/fraud"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/ingest"
)

// analyticsCacheTTL keeps dashboard polling off the database
const analyticsCacheTTL = 2 * time.Second

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("application failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting fraudlens api",
		zap.String("version", cfg.Version),
		zap.String("environment", cfg.Environment),
		zap.Int("port", cfg.Server.Port))

	provider, err := telemetry.InitTelemetry(ctx, &cfg.Telemetry, cfg.Version, cfg.Environment)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := migrate(cfg.Database.URL, logger); err != nil {
			return err
		}
	}

	pool, err := database.NewConnectionPool(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	locker, closeLocker, err := newLocker(cfg, logger)
	if err != nil {
		return err
	}
	defer closeLocker()

	registry := metrics.NewRegistry()
	repo := repository.NewTransactionRepository(pool.Pool(), pool)

	hub := websocket.NewHub(logger.Named("events"), cfg.Server.AllowedOrigins)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	scorer := fraud.NewService(fraud.Config{
		Trees:                          cfg.Scoring.Trees,
		MaxSamples:                     cfg.Scoring.MaxSamples,
		Contamination:                  cfg.Scoring.Contamination,
		Seed:                           cfg.Scoring.Seed,
		SeverityWeight:                 cfg.Scoring.SeverityWeight,
		FingerprintMismatchProbability: cfg.Scoring.FingerprintMismatchProbability,
	}, logger.Named("fraud"), fraud.WithMetrics(registry))

	ingestSvc := ingest.NewService(scorer, repo, locker, logger.Named("ingest"),
		ingest.WithPublisher(hub),
		ingest.WithMetrics(registry),
		ingest.WithSeed(ingest.SeedConfig{
			Enabled: cfg.Seed.Enabled,
			Count:   cfg.Seed.Count,
			Seed:    cfg.Seed.Seed,
		}),
	)
	dispositionSvc := disposition.NewService(repo, locker, hub, registry, logger.Named("disposition"))
	analyticsSvc := analytics.NewService(repo, logger.Named("analytics"), analytics.WithCacheTTL(analyticsCacheTTL))

	var tokens rest.TokenValidator
	if cfg.Auth.Enabled {
		ts, err := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer, cfg.Auth.TokenExpiry)
		if err != nil {
			return fmt.Errorf("create token service: %w", err)
		}
		tokens = ts
	} else {
		logger.Warn("authentication is disabled; every caller is treated as an admin")
	}

	if res, err := ingestSvc.SeedDemo(ctx); err != nil {
		logger.Warn("demo seed failed", zap.Error(err))
	} else if res != nil {
		logger.Info("demo data seeded", zap.Int("added", res.Added), zap.Int("flagged", res.Flagged))
	}

	handler, err := rest.NewRouter(cfg, rest.Dependencies{
		Orders:         repo,
		Analytics:      analyticsSvc,
		Disposition:    dispositionSvc,
		Ingest:         ingestSvc,
		Tokens:         tokens,
		DB:             pool,
		Metrics:        registry,
		MetricsHandler: registry.Handler(),
		Events:         hub,
	}, logger.Named("http"))
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	server := rest.NewServer(cfg.Server, handler, logger.Named("http"))
	if err := server.ListenAndRun(ctx); err != nil {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

func migrate(databaseURL string, logger *zap.Logger) error {
	m, err := database.NewMigrator(databaseURL, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("failed to close migrator", zap.Error(err))
		}
	}()
	if err := m.Up(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// newLocker picks the Redis locker when an address is configured and the
// in-process one otherwise.
func newLocker(cfg *config.Config, logger *zap.Logger) (cache.Locker, func(), error) {
	if cfg.Redis.URL == "" {
		logger.Info("redis not configured, using in-process locks")
		return cache.NewLocalLocker(), func() {}, nil
	}

	client, err := cache.NewRedisClient(&cfg.Redis, logger)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	return cache.NewRedisLocker(client, &cfg.Redis, logger), closeFn, nil
}
