package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/claude/coachgen/internal/models"
)

// catalogFileBase is the name of a single-file catalog holding every partition.
const catalogFileBase = "catalog"

// LoadDir reads a catalog directory. Each partition lives in <partition>.json,
// <partition>.yaml, <partition>.yml or <partition>.csv; a catalog.{json,yaml,yml}
// file holding all partitions is merged in first. Other files are ignored.
func LoadDir(dir string) (*models.RawCatalog, *Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading catalog dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	c := &models.RawCatalog{}
	result := &Result{}

	for _, name := range names {
		ext := filepath.Ext(name)
		if strings.ToLower(strings.TrimSuffix(name, ext)) != catalogFileBase {
			continue
		}
		if !isCatalogExt(ext) || DetectFormat(ext) == FormatCSV {
			continue
		}
		path := filepath.Join(dir, name)
		whole, sub, err := LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range models.Partitions {
			c.SetPartition(p, append(c.Partition(p), whole.Partition(p)...))
		}
		merge(result, sub)
	}

	for _, name := range names {
		partition, ok := partitionFromFile(name)
		if !ok {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		records, skipped, err := DecodeRecords(data, DetectFormat(name))
		if err != nil {
			return nil, nil, fmt.Errorf("loading %s: %w", path, err)
		}
		c.SetPartition(partition, append(c.Partition(partition), records...))
		result.add(partition, len(records)+skipped, skipped)
		result.Files = append(result.Files, name)
	}

	if len(result.Files) == 0 {
		return nil, nil, fmt.Errorf("no catalog files in %s", dir)
	}
	result.summarize()
	return c, result, nil
}

// LoadFile reads a single partitioned catalog file.
func LoadFile(path string) (*models.RawCatalog, *Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c, result, err := DecodeCatalog(data, DetectFormat(path))
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", path, err)
	}
	result.Files = []string{filepath.Base(path)}
	return c, result, nil
}

func merge(dst, src *Result) {
	for p, n := range src.Partitions {
		if dst.Partitions == nil {
			dst.Partitions = map[string]int{}
		}
		dst.Partitions[p] += n
	}
	dst.RecordsReceived += src.RecordsReceived
	dst.RecordsSkipped += src.RecordsSkipped
	dst.Files = append(dst.Files, src.Files...)
}
