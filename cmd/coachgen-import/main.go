package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/coachgen/internal/config"
	"github.com/claude/coachgen/internal/importer"
	"github.com/claude/coachgen/internal/ingest"
	"github.com/claude/coachgen/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	catalogPath := flag.String("path", "", "catalog directory (defaults to catalog.dir from the config)")
	dryRun := flag.Bool("dry-run", false, "load and classify without writing to the database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := context.Background()

	// Dry runs with an explicit path need neither config nor database.
	dir := *catalogPath
	var cfg *config.Config
	if dir == "" || !*dryRun {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		if dir == "" {
			dir = cfg.Catalog.Dir
		}
	}
	if dir == "" {
		fmt.Fprintf(os.Stderr, "Usage: coachgen-import -config config.yaml -path /path/to/catalog [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Verify catalog directory exists
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Error("catalog path does not exist or is not a directory", "path", dir)
		os.Exit(1)
	}

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
		stats, err := importer.New(nil, log, true).Import(ctx, dir)
		printStats(log, stats)
		if err != nil {
			log.Error("import failed", "error", err)
			os.Exit(1)
		}
		return
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Run import
	imp := importer.New(ingest.NewProvider(db, log), log, false)
	stats, err := imp.Import(ctx, dir)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	if stats == nil {
		return
	}
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"records_received", stats.RecordsReceived,
		"records_stored", stats.RecordsStored,
		"records_skipped", stats.RecordsSkipped,
	)
	for _, p := range stats.Partitions {
		log.Info("partition",
			"name", p.Partition,
			"exercises", p.Exercises,
			"principals", p.Principals,
			"ergometers", p.Ergometers,
			"by_group", p.ByGroup,
		)
	}
}
