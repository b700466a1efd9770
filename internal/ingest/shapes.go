package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/claude/coachgen/internal/models"
)

// Format is the encoding of a catalog payload.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatCSV
)

// DetectFormat picks the format from a file extension or content type.
// Anything that is neither YAML nor CSV is treated as JSON.
func DetectFormat(nameOrType string) Format {
	s := strings.ToLower(nameOrType)
	switch {
	case strings.HasSuffix(s, ".yaml"), strings.HasSuffix(s, ".yml"), strings.Contains(s, "yaml"):
		return FormatYAML
	case strings.HasSuffix(s, ".csv"), strings.Contains(s, "text/csv"):
		return FormatCSV
	default:
		return FormatJSON
	}
}

// Shape describes how records are laid out in a payload.
type Shape int

const (
	ShapeList        Shape = iota // [ {...}, {...} ]
	ShapeWrapped                  // {"exercises": [...]}
	ShapePartitioned              // {"main": [...], "warmup": [...], ...}
	ShapeUnknown
)

// wrapperKeys are accepted names of the record list in a wrapped payload.
var wrapperKeys = []string{"exercises", "exercices", "records"}

// DetectShape examines a decoded payload.
func DetectShape(doc any) Shape {
	switch v := doc.(type) {
	case []any:
		return ShapeList
	case map[string]any:
		for _, k := range wrapperKeys {
			if _, ok := v[k]; ok {
				return ShapeWrapped
			}
		}
		for k := range v {
			if models.IsPartition(k) {
				return ShapePartitioned
			}
		}
	}
	return ShapeUnknown
}

func decode(data []byte, f Format) (any, error) {
	var doc any
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	}
	return doc, nil
}

// DecodeRecords decodes a list or wrapped payload into raw records. Entries
// that are not objects are counted as skipped.
func DecodeRecords(data []byte, f Format) ([]models.RawExercise, int, error) {
	if f == FormatCSV {
		return csvRecords(data)
	}
	doc, err := decode(data, f)
	if err != nil {
		return nil, 0, err
	}
	switch DetectShape(doc) {
	case ShapeList:
		recs, skipped := toRecords(doc.([]any))
		return recs, skipped, nil
	case ShapeWrapped:
		m := doc.(map[string]any)
		for _, k := range wrapperKeys {
			if list, ok := m[k].([]any); ok {
				recs, skipped := toRecords(list)
				return recs, skipped, nil
			}
		}
		return nil, 0, fmt.Errorf("wrapped payload has no record list")
	default:
		return nil, 0, fmt.Errorf("unsupported payload shape")
	}
}

// DecodeCatalog decodes a partitioned payload holding a whole catalog.
func DecodeCatalog(data []byte, f Format) (*models.RawCatalog, *Result, error) {
	if f == FormatCSV {
		return nil, nil, fmt.Errorf("csv payloads hold a single partition")
	}
	doc, err := decode(data, f)
	if err != nil {
		return nil, nil, err
	}
	if DetectShape(doc) != ShapePartitioned {
		return nil, nil, fmt.Errorf("payload is not a partitioned catalog")
	}
	m := doc.(map[string]any)

	c := &models.RawCatalog{}
	result := &Result{}
	for _, p := range models.Partitions {
		list, ok := m[p].([]any)
		if !ok {
			continue
		}
		recs, skipped := toRecords(list)
		c.SetPartition(p, recs)
		result.add(p, len(list), skipped)
	}
	return c, result, nil
}

func toRecords(list []any) ([]models.RawExercise, int) {
	recs := make([]models.RawExercise, 0, len(list))
	skipped := 0
	for _, item := range list {
		m, ok := stringKeyed(item)
		if !ok {
			skipped++
			continue
		}
		recs = append(recs, models.RawExercise(m))
	}
	return recs, skipped
}

// stringKeyed converts YAML-style maps into JSON-compatible ones, recursively,
// so records can be stored as JSONB.
func stringKeyed(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = jsonCompatible(val)
		}
		return out, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return out, true
	}
	return nil, false
}

func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		m, _ := stringKeyed(t)
		return m
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = jsonCompatible(item)
		}
		return out
	default:
		return v
	}
}

// partitionFromFile maps a catalog file name to its partition: the base name
// without extension must be a partition name.
func partitionFromFile(name string) (string, bool) {
	base := strings.ToLower(filepath.Base(name))
	ext := filepath.Ext(base)
	if !isCatalogExt(ext) {
		return "", false
	}
	p := strings.TrimSuffix(base, ext)
	return p, models.IsPartition(p)
}

func isCatalogExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".json", ".yaml", ".yml", ".csv":
		return true
	}
	return false
}
