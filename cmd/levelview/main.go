package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lawnchairsociety/towergen/internal/archive"
	"github.com/lawnchairsociety/towergen/internal/config"
	"github.com/lawnchairsociety/towergen/internal/logger"
	"github.com/lawnchairsociety/towergen/internal/viewer"
)

func main() {
	configFile := flag.String("config", "data/levelgen.yaml", "Path to generator config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	address := flag.String("address", "", "Listen address (default: from config)")
	dbFile := flag.String("db", "", "Serve archived levels from this SQLite file (overrides config)")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)
	defer logger.Close()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("Failed to load config, using defaults", "path", *configFile, "error", err)
	}
	if *address != "" {
		cfg.Viewer.Address = *address
	}
	if *dbFile != "" {
		cfg.Archive.Enabled = true
		cfg.Archive.Driver = "sqlite"
		cfg.Archive.SQLitePath = *dbFile
	}

	srv := viewer.NewServer(cfg)
	if cfg.Archive.Enabled {
		store, err := archive.Open(cfg.Archive)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		defer store.Close()
		srv.WithArchive(store)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Viewer stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("Viewer stopped")
}
