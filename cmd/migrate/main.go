package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/config"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/database"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/telemetry"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to configuration file")
		action     = flag.String("action", "up", "Migration action: up, down, version")
	)
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

	if err := run(*action, cfg.Database.URL, logger); err != nil {
		logger.Error("migration failed", zap.String("action", *action), zap.Error(err))
		os.Exit(1)
	}
}

func run(action, databaseURL string, logger *zap.Logger) error {
	switch action {
	case "up", "down", "version":
	default:
		return fmt.Errorf("unknown action %q", action)
	}

	m, err := database.NewMigrator(databaseURL, logger)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	switch action {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	default:
		version, dirty, ok, err := m.Version()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("no migrations applied")
			return nil
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		return nil
	}
}
