// Package importer loads a catalog directory into the database.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/claude/coachgen/internal/ingest"
	"github.com/claude/coachgen/internal/models"
	"github.com/claude/coachgen/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed  int
	RecordsReceived int
	RecordsStored   int64
	RecordsSkipped  int

	Partitions []storage.PartitionStats
}

// Sink stores a loaded catalog.
type Sink interface {
	IngestCatalog(ctx context.Context, source string, c *models.RawCatalog, result *ingest.Result) error
}

var _ Sink = (*ingest.Provider)(nil)

// Importer reads partition files from a catalog directory and replaces the
// stored partitions with them.
type Importer struct {
	sink   Sink
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. The sink may be nil in dry-run mode.
func New(sink Sink, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{sink: sink, log: log, dryRun: dryRun}
}

// Import loads dir and, unless in dry-run mode, stores every partition found.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	raw, result, err := ingest.LoadDir(dir)
	if err != nil {
		return &imp.stats, fmt.Errorf("loading catalog: %w", err)
	}
	imp.stats.FilesProcessed = len(result.Files)
	imp.stats.RecordsReceived = result.RecordsReceived
	imp.stats.Partitions = storage.ComputeCatalogStats(raw)

	for _, p := range imp.stats.Partitions {
		if p.Exercises == 0 {
			continue
		}
		imp.log.Info("partition loaded",
			"partition", p.Partition,
			"exercises", p.Exercises,
			"principals", p.Principals,
			"ergometers", p.Ergometers,
		)
	}

	if imp.dryRun {
		imp.stats.RecordsSkipped = result.RecordsSkipped
		return &imp.stats, nil
	}

	if err := imp.sink.IngestCatalog(ctx, "import:"+dir, raw, result); err != nil {
		imp.stats.RecordsSkipped = result.RecordsSkipped
		return &imp.stats, fmt.Errorf("storing catalog: %w", err)
	}
	imp.stats.RecordsStored = result.RecordsStored
	imp.stats.RecordsSkipped = result.RecordsSkipped
	if result.Message != "" {
		imp.log.Warn(result.Message)
	}
	return &imp.stats, nil
}
