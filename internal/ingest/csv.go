package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/claude/coachgen/internal/models"
)

// headerPathSep splits a column header into nested keys:
// "parametres.force.series" fills raw["parametres"]["force"]["series"].
const headerPathSep = "."

// detectDelimiter picks ';' (spreadsheet exports with decimal commas) or ','
// from the header line.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

// decodeCSV reads a spreadsheet export: a header row followed by one record
// per row. Empty cells are omitted; cells are kept as text and resolved by the
// catalog normalizer, which accepts decimal commas and ranges such as "8-12".
func decodeCSV(data []byte) ([]any, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectDelimiter(data)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return []any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	paths := make([][]string, len(header))
	for i, h := range header {
		paths[i] = strings.Split(strings.TrimSpace(h), headerPathSep)
	}

	var out []any
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}
		rec := map[string]any{}
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if i >= len(paths) || cell == "" || paths[i][0] == "" {
				continue
			}
			setPath(rec, paths[i], cell)
		}
		if len(rec) == 0 {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func setPath(m map[string]any, path []string, v string) {
	for _, k := range path[:len(path)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[k] = next
		}
		m = next
	}
	m[path[len(path)-1]] = v
}

// csvRecords is DecodeRecords for CSV payloads.
func csvRecords(data []byte) ([]models.RawExercise, int, error) {
	rows, err := decodeCSV(data)
	if err != nil {
		return nil, 0, err
	}
	recs, skipped := toRecords(rows)
	return recs, skipped, nil
}
