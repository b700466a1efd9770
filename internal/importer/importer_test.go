package importer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/claude/coachgen/internal/ingest"
	"github.com/claude/coachgen/internal/models"
)

type fakeSink struct {
	catalog *models.RawCatalog
	err     error
}

func (f *fakeSink) IngestCatalog(_ context.Context, _ string, c *models.RawCatalog, result *ingest.Result) error {
	if f.err != nil {
		return f.err
	}
	f.catalog = c
	for _, p := range models.Partitions {
		result.RecordsStored += int64(len(c.Partition(p)))
	}
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func catalogDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"main.json":      `[{"nom":"Squat barre","groupe":"quadriceps"},{"nom":"Leg extension","groupe":"quadriceps"}]`,
		"cooldown.yaml":  "- nom: Étirement quadriceps\n  groupe: quadriceps\n",
		"ergometer.json": `{"exercises":[{"nom":"Rameur"}]}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// TestImport verifies files are loaded, stats are computed and the catalog
// reaches the sink.
func TestImport(t *testing.T) {
	sink := &fakeSink{}
	stats, err := New(sink, discard(), false).Import(context.Background(), catalogDir(t))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if stats.FilesProcessed != 3 {
		t.Errorf("files = %d, want 3", stats.FilesProcessed)
	}
	if stats.RecordsReceived != 4 || stats.RecordsStored != 4 {
		t.Errorf("received/stored = %d/%d, want 4/4", stats.RecordsReceived, stats.RecordsStored)
	}
	if stats.Partitions[0].Principals != 1 {
		t.Errorf("main principals = %d, want 1", stats.Partitions[0].Principals)
	}
	if sink.catalog == nil || len(sink.catalog.Main) != 2 {
		t.Error("catalog not passed to sink")
	}
}

// TestImportDryRun verifies nothing is stored in dry-run mode.
func TestImportDryRun(t *testing.T) {
	stats, err := New(nil, discard(), true).Import(context.Background(), catalogDir(t))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if stats.RecordsStored != 0 {
		t.Errorf("stored = %d, want 0", stats.RecordsStored)
	}
	if stats.RecordsReceived != 4 {
		t.Errorf("received = %d, want 4", stats.RecordsReceived)
	}
}

// TestImportErrors verifies load and sink failures are reported with stats.
func TestImportErrors(t *testing.T) {
	if _, err := New(&fakeSink{}, discard(), false).Import(context.Background(), t.TempDir()); err == nil {
		t.Error("expected error for empty dir")
	}

	sink := &fakeSink{err: errors.New("db down")}
	stats, err := New(sink, discard(), false).Import(context.Background(), catalogDir(t))
	if err == nil {
		t.Fatal("expected sink error")
	}
	if stats == nil || stats.FilesProcessed != 3 {
		t.Errorf("stats = %+v, want files counted before the failure", stats)
	}
}
