package program

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/claude/coachgen/internal/generator"
	"github.com/claude/coachgen/internal/models"
	"github.com/claude/coachgen/internal/storage"
)

type memStore struct {
	catalog  *models.RawCatalog
	programs map[uuid.UUID]*storage.ProgramRecord
	order    []uuid.UUID
	failID   uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		catalog: &models.RawCatalog{
			Main: []models.RawExercise{
				{"nom": "Squat barre", "groupe": "quadriceps", "niveau": "Débutant"},
				{"nom": "Développé couché", "groupe": "pectoraux", "niveau": "Débutant"},
				{"nom": "Rowing barre", "groupe": "dos", "niveau": "Débutant"},
			},
			Ergometer: []models.RawExercise{
				{"nom": "Rameur", "utilisation": "echauffement, cardio"},
			},
		},
		programs: map[uuid.UUID]*storage.ProgramRecord{},
	}
}

func (m *memStore) LoadCatalog(context.Context) (*models.RawCatalog, error) {
	if m.catalog == nil {
		return nil, errors.New("connection refused")
	}
	return m.catalog, nil
}

func (m *memStore) InsertProgram(_ context.Context, rec storage.ProgramRecord) error {
	m.programs[rec.ID] = &rec
	m.order = append(m.order, rec.ID)
	return nil
}

func (m *memStore) GetProgram(_ context.Context, id uuid.UUID) (*storage.ProgramRecord, error) {
	rec, ok := m.programs[id]
	if !ok {
		return nil, fmt.Errorf("program %s: %w", id, storage.ErrNotFound)
	}
	cp := *rec
	return &cp, nil
}

func (m *memStore) ListPrograms(context.Context, int) ([]storage.ProgramSummary, error) {
	var out []storage.ProgramSummary
	for _, id := range m.order {
		rec := m.programs[id]
		out = append(out, storage.ProgramSummary{ID: rec.ID, Name: rec.Program.Name})
	}
	return out, nil
}

func (m *memStore) ListAutoRegeneratePrograms(context.Context) ([]storage.ProgramRecord, error) {
	var out []storage.ProgramRecord
	for _, id := range m.order {
		if rec := m.programs[id]; rec.AutoRegenerate {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memStore) UpdateProgramDocument(_ context.Context, id uuid.UUID, p models.Program) error {
	if id == m.failID {
		return errors.New("write failed")
	}
	rec, ok := m.programs[id]
	if !ok {
		return storage.ErrNotFound
	}
	rec.Program = p
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newService(store Store) *Service {
	return NewService(store, discard(), WithSeed(7), WithClock(func() time.Time { return fixedNow }))
}

var validRequest = generator.Request{Sexe: "Homme", Niveau: "Débutant", NbSeances: 3, Objectif: "force"}

// TestCreateStoresProgram verifies that Create assigns an ID, keeps the
// request fields and persists the document.
func TestCreateStoresProgram(t *testing.T) {
	store := newMemStore()
	svc := newService(store)

	rec, err := svc.Create(context.Background(), CreateRequest{Request: validRequest, AutoRegenerate: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Fatal("program ID not assigned")
	}
	if rec.Program.ID != rec.ID {
		t.Errorf("document id = %s, want %s", rec.Program.ID, rec.ID)
	}
	if len(rec.Program.Sessions) != 3 {
		t.Errorf("sessions = %d, want 3", len(rec.Program.Sessions))
	}
	if rec.Level != "Débutant" || rec.Sessions != 3 || rec.Objective != "force" || !rec.AutoRegenerate {
		t.Errorf("record fields = %+v", rec)
	}
	if !rec.CreatedAt.Equal(fixedNow) {
		t.Errorf("created at = %v, want %v", rec.CreatedAt, fixedNow)
	}
	if _, ok := store.programs[rec.ID]; !ok {
		t.Error("program not stored")
	}
}

// TestCreateRejectsInvalidRequest verifies validation happens before any
// catalog access or write.
func TestCreateRejectsInvalidRequest(t *testing.T) {
	store := newMemStore()
	svc := newService(store)

	req := validRequest
	req.NbSeances = 9
	_, err := svc.Create(context.Background(), CreateRequest{Request: req})
	if !errors.Is(err, generator.ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
	if len(store.programs) != 0 {
		t.Errorf("programs stored = %d, want 0", len(store.programs))
	}
}

// TestPreviewSeededIsDeterministic verifies that a seeded service produces the
// same program on every call.
func TestPreviewSeededIsDeterministic(t *testing.T) {
	svc := newService(newMemStore())
	a, err := svc.Preview(context.Background(), validRequest)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	b, err := svc.Preview(context.Background(), validRequest)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("seeded previews differ (-first +second):\n%s", diff)
	}
}

// TestPreviewCatalogError verifies that storage errors are wrapped.
func TestPreviewCatalogError(t *testing.T) {
	store := newMemStore()
	store.catalog = nil
	if _, err := newService(store).Preview(context.Background(), validRequest); err == nil {
		t.Fatal("expected error when the catalog cannot be loaded")
	}
}

// TestRegenerateKeepsIdentity verifies that regeneration replaces the sessions
// but keeps the ID and creation time.
func TestRegenerateKeepsIdentity(t *testing.T) {
	store := newMemStore()
	svc := newService(store)
	rec, err := svc.Create(context.Background(), CreateRequest{Request: validRequest})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	later := fixedNow.Add(24 * time.Hour)
	svc.now = func() time.Time { return later }
	got, err := svc.Regenerate(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if got.Program.ID != rec.ID {
		t.Errorf("regenerated id = %s, want %s", got.Program.ID, rec.ID)
	}
	if !got.Program.CreatedAt.Equal(fixedNow) {
		t.Errorf("created at = %v, want %v", got.Program.CreatedAt, fixedNow)
	}
	if got.RegeneratedAt == nil || !got.RegeneratedAt.Equal(later) {
		t.Errorf("regenerated at = %v, want %v", got.RegeneratedAt, later)
	}
	if len(store.programs[rec.ID].Program.Sessions) != 3 {
		t.Errorf("stored sessions = %d, want 3", len(store.programs[rec.ID].Program.Sessions))
	}
}

// TestRegenerateNotFound verifies that a missing program surfaces ErrNotFound.
func TestRegenerateNotFound(t *testing.T) {
	_, err := newService(newMemStore()).Regenerate(context.Background(), uuid.New())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// TestRegenerateAll verifies that only flagged programs are regenerated and a
// failing one does not stop the rest.
func TestRegenerateAll(t *testing.T) {
	store := newMemStore()
	svc := newService(store)
	ctx := context.Background()

	var flagged []uuid.UUID
	for i, auto := range []bool{true, false, true, true} {
		rec, err := svc.Create(ctx, CreateRequest{Request: validRequest, AutoRegenerate: auto})
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		if auto {
			flagged = append(flagged, rec.ID)
		}
	}
	store.failID = flagged[1]

	n, err := svc.RegenerateAll(ctx)
	if err != nil {
		t.Fatalf("RegenerateAll: %v", err)
	}
	if n != 2 {
		t.Errorf("updated = %d, want 2", n)
	}
}

// TestRegenerateAllEmpty verifies that nothing is loaded when no program is
// flagged.
func TestRegenerateAllEmpty(t *testing.T) {
	store := newMemStore()
	store.catalog = nil
	n, err := newService(store).RegenerateAll(context.Background())
	if err != nil || n != 0 {
		t.Errorf("RegenerateAll = %d, %v, want 0, nil", n, err)
	}
}
