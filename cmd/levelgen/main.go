package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lawnchairsociety/towergen/internal/archive"
	"github.com/lawnchairsociety/towergen/internal/config"
	"github.com/lawnchairsociety/towergen/internal/level"
	"github.com/lawnchairsociety/towergen/internal/logger"
)

func main() {
	configFile := flag.String("config", "data/levelgen.yaml", "Path to generator config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	depth := flag.Int("depth", 0, "Depth of the first level (default: from config)")
	seed := flag.Int64("seed", 0, "Generation seed (default: random based on current time)")
	width := flag.Int("width", 0, "Map width (default: from config)")
	height := flag.Int("height", 0, "Map height (default: from config)")
	count := flag.Int("count", 1, "Number of consecutive depths to generate")
	outDir := flag.String("out", "", "Directory to write level YAML files to (empty: don't write)")
	dbFile := flag.String("db", "", "Archive levels in this SQLite file (overrides config)")
	show := flag.String("show", "", "Print a level YAML file and exit")
	showID := flag.Int64("id", 0, "Print an archived level by id and exit")
	quiet := flag.Bool("quiet", false, "Don't print maps")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)
	defer logger.Close()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("Failed to load config, using defaults", "path", *configFile, "error", err)
	}
	if *width > 0 {
		cfg.Generator.Width = *width
	}
	if *height > 0 {
		cfg.Generator.Height = *height
	}
	if *depth > 0 {
		cfg.Generator.Depth = *depth
	}
	if *dbFile != "" {
		cfg.Archive.Enabled = true
		cfg.Archive.Driver = "sqlite"
		cfg.Archive.SQLitePath = *dbFile
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *show != "" {
		lvl, err := level.LoadYAML(*show)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading level: %v\n", err)
			os.Exit(1)
		}
		printLevel(lvl)
		return
	}

	var store *archive.Archive
	if cfg.Archive.Enabled || *showID != 0 {
		store, err = archive.Open(cfg.Archive)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening archive: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	if *showID != 0 {
		lvl, err := store.LoadLevel(*showID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading level %d: %v\n", *showID, err)
			os.Exit(1)
		}
		printLevel(lvl)
		return
	}

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
		logger.Info("Seed selected", "seed", baseSeed, "random", true)
	}

	gen := level.NewGenerator(cfg.Generator)
	failed := 0
	start := time.Now()

	for i := 0; i < *count; i++ {
		d := cfg.Generator.Depth + i
		lvl, err := gen.Generate(d, baseSeed)
		if err != nil {
			logger.Error("Failed to generate level", "depth", d, "seed", baseSeed, "error", err)
			failed++
			continue
		}

		if !*quiet {
			printLevel(lvl)
		}

		if *outDir != "" {
			path := filepath.Join(*outDir, fmt.Sprintf("depth_%02d_seed_%d.yaml", d, lvl.Seed))
			if err := lvl.SaveYAML(path); err != nil {
				logger.Error("Failed to write level", "path", path, "error", err)
			} else {
				logger.Info("Level written", "path", path)
			}
		}

		if store != nil {
			id, err := store.SaveLevel(lvl)
			switch {
			case errors.Is(err, archive.ErrLevelExists):
				logger.Info("Level already archived", "id", id, "depth", d)
			case err != nil:
				logger.Error("Failed to archive level", "depth", d, "error", err)
			default:
				logger.Info("Level archived", "id", id, "depth", d)
			}
		}
	}

	logger.Always("Generation finished",
		"levels", *count-failed,
		"failed", failed,
		"duration", time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}

func printLevel(lvl *level.Level) {
	fmt.Printf("Depth %d  seed %d  attempt %d  %dx%d\n", lvl.Depth, lvl.Seed, lvl.Attempt, lvl.Width(), lvl.Height())
	fmt.Println(lvl.ASCII())

	census := level.Census{}
	census.SpawnEntities(lvl.Depth, lvl.Spawns)
	for _, name := range census.Names() {
		fmt.Printf("  %-16s %d\n", name, census[name])
	}
	if len(lvl.Stages) > 0 {
		fmt.Printf("Stages: %v\n", lvl.Stages)
	}
	fmt.Println()
}
