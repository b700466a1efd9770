package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/claude/coachgen/internal/models"
	"github.com/claude/coachgen/internal/storage"
)

// Result holds the outcome of a catalog import.
type Result struct {
	RecordsReceived int            `json:"records_received"`
	RecordsStored   int64          `json:"records_stored"`
	RecordsSkipped  int            `json:"records_skipped"`
	Partitions      map[string]int `json:"partitions,omitempty"`
	Files           []string       `json:"files,omitempty"`
	Message         string         `json:"message,omitempty"`
}

func (r *Result) add(partition string, received, skipped int) {
	if r.Partitions == nil {
		r.Partitions = map[string]int{}
	}
	r.RecordsReceived += received
	r.RecordsSkipped += skipped
	r.Partitions[partition] += received - skipped
}

func (r *Result) summarize() {
	if r.RecordsSkipped == 0 {
		return
	}
	names := make([]string, 0, len(r.Partitions))
	for p := range r.Partitions {
		names = append(names, p)
	}
	slices.Sort(names)
	parts := make([]string, 0, len(names))
	for _, p := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", p, r.Partitions[p]))
	}
	r.Message = fmt.Sprintf("%d records skipped; kept %s", r.RecordsSkipped, strings.Join(parts, ", "))
}

// Store is the persistence needed by Provider.
type Store interface {
	ReplaceCatalogPartition(ctx context.Context, partition string, records []models.RawExercise) (int64, error)
	InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error)
	UpdateImportLog(ctx context.Context, id int64, log storage.ImportLog) error
}

var _ Store = (*storage.DB)(nil)

// Provider stores catalog partitions and records an import log per call.
type Provider struct {
	store Store
	log   *slog.Logger
}

// NewProvider creates a new catalog ingest provider.
func NewProvider(store Store, log *slog.Logger) *Provider {
	return &Provider{store: store, log: log}
}

// Ingest decodes a list or wrapped payload and replaces the partition with it.
func (p *Provider) Ingest(ctx context.Context, source, partition string, data []byte, f Format) (*Result, error) {
	if !models.IsPartition(partition) {
		return nil, fmt.Errorf("unknown catalog partition %q", partition)
	}
	records, skipped, err := DecodeRecords(data, f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s payload: %w", partition, err)
	}
	result := &Result{}
	result.add(partition, len(records)+skipped, skipped)

	if err := p.storePartition(ctx, source, partition, records, result); err != nil {
		return result, err
	}
	result.summarize()
	return result, nil
}

// IngestCatalog replaces every partition present in c.
func (p *Provider) IngestCatalog(ctx context.Context, source string, c *models.RawCatalog, result *Result) error {
	for _, partition := range models.Partitions {
		records := c.Partition(partition)
		if _, ok := result.Partitions[partition]; !ok && len(records) == 0 {
			continue
		}
		if err := p.storePartition(ctx, source, partition, records, result); err != nil {
			return err
		}
	}
	result.summarize()
	return nil
}

func (p *Provider) storePartition(ctx context.Context, source, partition string, records []models.RawExercise, result *Result) error {
	start := time.Now()
	entry := storage.ImportLog{
		Source:          source,
		Partition:       partition,
		Status:          "running",
		RecordsReceived: len(records),
	}
	logID, err := p.store.InsertImportLog(ctx, entry)
	if err != nil {
		p.log.Warn("failed to create import log", "error", err)
	}

	stored, storeErr := p.store.ReplaceCatalogPartition(ctx, partition, records)

	durationMs := int(time.Since(start).Milliseconds())
	entry.DurationMs = &durationMs
	entry.RecordsStored = stored
	entry.RecordsSkipped = len(records) - int(stored)
	entry.Status = "success"
	if storeErr != nil {
		msg := storeErr.Error()
		entry.Status = "error"
		entry.ErrorMessage = &msg
		entry.RecordsStored = 0
		entry.RecordsSkipped = 0
	}
	if meta, err := json.Marshal(map[string]any{"partition_counts": result.Partitions}); err == nil {
		raw := json.RawMessage(meta)
		entry.Metadata = &raw
	}
	if logID > 0 {
		if err := p.store.UpdateImportLog(ctx, logID, entry); err != nil {
			p.log.Warn("failed to update import log", "id", logID, "error", err)
		}
	}

	if storeErr != nil {
		return fmt.Errorf("storing partition %s: %w", partition, storeErr)
	}
	// Records without a name are dropped by the store.
	result.RecordsStored += stored
	result.RecordsSkipped += len(records) - int(stored)
	if result.Partitions == nil {
		result.Partitions = map[string]int{}
	}
	result.Partitions[partition] = int(stored)

	p.log.Info("catalog partition stored",
		"source", source, "partition", partition,
		"received", len(records), "stored", stored, "duration_ms", durationMs)
	return nil
}
