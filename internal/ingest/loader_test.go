package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

// TestLoadDir verifies that partition files in every format are loaded and
// unrelated files are ignored.
func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.json", `[{"nom":"Squat barre","groupe":"quadriceps"},{"nom":"Leg curl"}]`)
	writeFile(t, dir, "warmup.yaml", "exercises:\n  - nom: Jumping jacks\n    groupe: fullbody\n")
	writeFile(t, dir, "ergometer.yml", "- nom: Rameur\n- nom: Vélo droit\n")
	writeFile(t, dir, "cooldown.csv", "nom;groupe\nEtirement ischios;ischios\n")
	writeFile(t, dir, "catalog.csv", "nom\nIgnored\n")
	writeFile(t, dir, "README.md", "# catalog")
	writeFile(t, dir, "notes.json", `[]`)

	c, result, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(c.Main) != 2 || len(c.Warmup) != 1 || len(c.Cooldown) != 1 || len(c.Ergometer) != 2 {
		t.Errorf("partition sizes = %d/%d/%d/%d, want 2/1/1/2",
			len(c.Main), len(c.Warmup), len(c.Cooldown), len(c.Ergometer))
	}
	if c.Warmup[0]["nom"] != "Jumping jacks" {
		t.Errorf("warmup[0] = %v", c.Warmup[0])
	}
	wantFiles := []string{"cooldown.csv", "ergometer.yml", "main.json", "warmup.yaml"}
	if diff := cmp.Diff(wantFiles, result.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	if result.RecordsReceived != 6 {
		t.Errorf("received = %d, want 6", result.RecordsReceived)
	}
}

// TestLoadDirSingleFile verifies that a catalog.yaml holding all partitions
// is merged with per-partition files.
func TestLoadDirSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "catalog.yaml", `
main:
  - nom: Développé couché
cooldown:
  - nom: Étirement pectoraux
`)
	writeFile(t, dir, "main.json", `[{"nom":"Tractions"}]`)

	c, _, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(c.Main) != 2 {
		t.Fatalf("main = %d records, want 2", len(c.Main))
	}
	if c.Main[0]["nom"] != "Développé couché" {
		t.Errorf("catalog file should load first, got %v", c.Main[0])
	}
	if len(c.Cooldown) != 1 {
		t.Errorf("cooldown = %d records, want 1", len(c.Cooldown))
	}
}

// TestLoadDirErrors verifies the error paths: missing dir, no catalog files,
// malformed content.
func TestLoadDirErrors(t *testing.T) {
	if _, _, err := LoadDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing dir")
	}

	empty := t.TempDir()
	writeFile(t, empty, "README.md", "nothing here")
	if _, _, err := LoadDir(empty); err == nil {
		t.Error("expected error for dir without catalog files")
	}

	bad := t.TempDir()
	writeFile(t, bad, "main.json", `{"nom": "Squat"`)
	if _, _, err := LoadDir(bad); err == nil {
		t.Error("expected error for malformed json")
	}
}
