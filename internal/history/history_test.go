package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/claude/coachgen/internal/models"
)

func program(name string, created time.Time) *models.Program {
	return &models.Program{
		Name:      name,
		Objective: "force",
		Level:     "Débutant",
		Sex:       "Homme",
		Variant:   "A",
		CreatedAt: created,
		Sessions:  []models.Session{models.NewSession(1, []string{"pectoraux"}), models.NewSession(2, []string{"dos"})},
	}
}

// TestRecordAndGet verifies a recorded program round-trips with its ID
// assigned.
func TestRecordAndGet(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	p := program("force - 2 séances", time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	if err := s.Record(ctx, p, "abc"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Fatal("ID not assigned")
	}

	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != p.Name || len(got.Sessions) != 2 {
		t.Errorf("got %q with %d sessions, want %q with 2", got.Name, len(got.Sessions), p.Name)
	}
	if got.Sessions[1].TargetGroups[0] != "dos" {
		t.Errorf("session 2 targets = %v", got.Sessions[1].TargetGroups)
	}
}

// TestGetNotFound verifies unknown IDs map to ErrNotFound.
func TestGetNotFound(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Get(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// TestListNewestFirst verifies ordering, limit and that the database persists
// across reopen.
func TestListNewestFirst(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		if err := s.Record(ctx, program(name, base.Add(time.Duration(i)*time.Hour)), "h"); err != nil {
			t.Fatal(err)
		}
	}
	s.Close()

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	entries, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Name != "third" || entries[1].Name != "second" {
		t.Errorf("order = %q, %q, want third, second", entries[0].Name, entries[1].Name)
	}
	if entries[0].Sessions != 2 || entries[0].CatalogHash != "h" {
		t.Errorf("entry = %+v", entries[0])
	}
}

// TestHashCatalogStable verifies equal catalogs hash equally and a change
// alters the hash.
func TestHashCatalogStable(t *testing.T) {
	a := &models.RawCatalog{Main: []models.RawExercise{{"nom": "Squat", "groupe": "quadriceps"}}}
	b := &models.RawCatalog{Main: []models.RawExercise{{"groupe": "quadriceps", "nom": "Squat"}}}
	ha, _ := HashCatalog(a)
	hb, _ := HashCatalog(b)
	if ha != hb {
		t.Errorf("hashes differ for equal catalogs: %s vs %s", ha, hb)
	}
	b.Main[0]["nom"] = "Front squat"
	hc, _ := HashCatalog(b)
	if hc == ha {
		t.Error("hash unchanged after edit")
	}
}
