package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/claude/coachgen/internal/catalog"
	"github.com/claude/coachgen/internal/models"
)

// ReplaceCatalogPartition swaps the records of a partition atomically. Returns
// the number of records stored; records without a name are skipped.
func (db *DB) ReplaceCatalogPartition(ctx context.Context, partition string, records []models.RawExercise) (int64, error) {
	if !models.IsPartition(partition) {
		return 0, fmt.Errorf("unknown catalog partition %q", partition)
	}

	var stored int64
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM catalog_exercises WHERE partition = $1`, partition); err != nil {
			return fmt.Errorf("clearing partition %s: %w", partition, err)
		}

		query := `INSERT INTO catalog_exercises (partition, position, name, raw) VALUES `
		args := make([]any, 0, len(records)*4)
		valueStrings := make([]string, 0, len(records))
		for i, r := range records {
			name := catalog.Normalize(r).Name
			if name == "" {
				continue
			}
			raw, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("encoding record %q: %w", name, err)
			}
			base := len(valueStrings) * 4
			valueStrings = append(valueStrings, fmt.Sprintf("($%d,$%d,$%d,$%d)", base+1, base+2, base+3, base+4))
			args = append(args, partition, i, name, raw)
		}
		if len(valueStrings) == 0 {
			return nil
		}

		tag, err := tx.Exec(ctx, query+strings.Join(valueStrings, ","), args...)
		if err != nil {
			return fmt.Errorf("inserting partition %s: %w", partition, err)
		}
		stored = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return stored, nil
}

// LoadCatalog reads every partition in authoring order.
func (db *DB) LoadCatalog(ctx context.Context) (*models.RawCatalog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT partition, raw FROM catalog_exercises ORDER BY partition, position`)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	c := &models.RawCatalog{}
	for rows.Next() {
		var partition string
		var raw []byte
		if err := rows.Scan(&partition, &raw); err != nil {
			return nil, fmt.Errorf("scanning catalog exercise: %w", err)
		}
		var r models.RawExercise
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decoding catalog exercise: %w", err)
		}
		c.SetPartition(partition, append(c.Partition(partition), r))
	}
	return c, rows.Err()
}

// PartitionStats summarizes one catalog partition.
type PartitionStats struct {
	Partition  string         `json:"partition"`
	Exercises  int            `json:"exercises"`
	Principals int            `json:"principals"`
	Ergometers int            `json:"ergometers"`
	ByGroup    map[string]int `json:"by_group"`
	ByErgoKind map[string]int `json:"by_ergo_kind,omitempty"`
}

// CatalogStats classifies the stored catalog and counts it per partition.
func (db *DB) CatalogStats(ctx context.Context) ([]PartitionStats, error) {
	raw, err := db.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeCatalogStats(raw), nil
}

// ComputeCatalogStats counts classified exercises per partition.
func ComputeCatalogStats(raw *models.RawCatalog) []PartitionStats {
	out := make([]PartitionStats, 0, len(models.Partitions))
	for _, p := range models.Partitions {
		s := PartitionStats{Partition: p, ByGroup: map[string]int{}}
		for _, e := range catalog.NormalizePartition(p, raw.Partition(p)) {
			s.Exercises++
			s.ByGroup[e.Group]++
			if e.IsPrincipal {
				s.Principals++
			}
			if e.IsErgometer {
				s.Ergometers++
				if s.ByErgoKind == nil {
					s.ByErgoKind = map[string]int{}
				}
				s.ByErgoKind[string(e.ErgoKind)]++
			}
		}
		out = append(out, s)
	}
	return out
}
