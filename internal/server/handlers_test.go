package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/claude/coachgen/internal/catalog"
	"github.com/claude/coachgen/internal/generator"
	"github.com/claude/coachgen/internal/ingest"
	"github.com/claude/coachgen/internal/models"
	"github.com/claude/coachgen/internal/program"
	"github.com/claude/coachgen/internal/split"
	"github.com/claude/coachgen/internal/storage"
)

const testKey = "test-key"

type fakePrograms struct {
	stored map[uuid.UUID]*storage.ProgramRecord
	err    error
}

func (f *fakePrograms) Preview(_ context.Context, req generator.Request) (models.Program, error) {
	if err := req.Validate(); err != nil {
		return models.Program{}, err
	}
	if f.err != nil {
		return models.Program{}, f.err
	}
	sessions := make([]models.Session, req.NbSeances)
	for i := range sessions {
		sessions[i] = models.NewSession(i+1, nil)
	}
	return models.Program{Name: fmt.Sprintf("%s - %d séances", req.Objectif, req.NbSeances), Sessions: sessions}, nil
}

func (f *fakePrograms) Create(ctx context.Context, req program.CreateRequest) (*storage.ProgramRecord, error) {
	p, err := f.Preview(ctx, req.Request)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.New()
	rec := &storage.ProgramRecord{ID: p.ID, Sessions: req.NbSeances, AutoRegenerate: req.AutoRegenerate, Program: p}
	f.stored[p.ID] = rec
	return rec, nil
}

func (f *fakePrograms) Get(_ context.Context, id uuid.UUID) (*storage.ProgramRecord, error) {
	rec, ok := f.stored[id]
	if !ok {
		return nil, fmt.Errorf("program %s: %w", id, storage.ErrNotFound)
	}
	return rec, nil
}

func (f *fakePrograms) List(context.Context, int) ([]storage.ProgramSummary, error) {
	var out []storage.ProgramSummary
	for _, rec := range f.stored {
		out = append(out, storage.ProgramSummary{ID: rec.ID, Name: rec.Program.Name})
	}
	return out, nil
}

func (f *fakePrograms) Regenerate(ctx context.Context, id uuid.UUID) (*storage.ProgramRecord, error) {
	return f.Get(ctx, id)
}

type fakeIngester struct {
	partition string
	format    ingest.Format
}

func (f *fakeIngester) Ingest(_ context.Context, _, partition string, data []byte, format ingest.Format) (*ingest.Result, error) {
	f.partition = partition
	f.format = format
	recs, skipped, err := ingest.DecodeRecords(data, format)
	if err != nil {
		return nil, err
	}
	return &ingest.Result{RecordsReceived: len(recs) + skipped, RecordsStored: int64(len(recs))}, nil
}

type fakeStore struct{}

func (fakeStore) CatalogStats(context.Context) ([]storage.PartitionStats, error) {
	return []storage.PartitionStats{{Partition: models.PartitionMain, Exercises: 12}}, nil
}

func (fakeStore) QueryImportLogs(context.Context, int) ([]storage.ImportLog, error) {
	return nil, nil
}

func newTestServer() (*Server, *fakePrograms, *fakeIngester) {
	programs := &fakePrograms{stored: map[uuid.UUID]*storage.ProgramRecord{}}
	ing := &fakeIngester{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(programs, ing, fakeStore{}, testKey, log), programs, ing
}

func do(t *testing.T, s *Server, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// TestCreateProgram verifies a valid request is stored and returned with 201.
func TestCreateProgram(t *testing.T) {
	s, programs, _ := newTestServer()
	rec := do(t, s, http.MethodPost, "/api/v1/programs",
		`{"sexe":"Homme","niveau":"Débutant","nbSeances":3,"objectif":"force","autoRegenerate":true}`,
		map[string]string{"X-API-Key": testKey})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	var got storage.ProgramRecord
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Program.Sessions) != 3 {
		t.Errorf("sessions = %d, want 3", len(got.Program.Sessions))
	}
	if !got.AutoRegenerate {
		t.Error("autoRegenerate flag lost")
	}
	if _, ok := programs.stored[got.ID]; !ok {
		t.Error("program not stored")
	}
}

// TestCreateProgramRequiresKey verifies that storing a program needs the API
// key while previews stay open.
func TestCreateProgramRequiresKey(t *testing.T) {
	s, programs, _ := newTestServer()
	body := `{"sexe":"Homme","niveau":"Débutant","nbSeances":3,"objectif":"force"}`

	tests := []struct {
		headers map[string]string
		want    int
	}{
		{nil, http.StatusUnauthorized},
		{map[string]string{"X-API-Key": "wrong"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		if rec := do(t, s, http.MethodPost, "/api/v1/programs", body, tt.headers); rec.Code != tt.want {
			t.Errorf("headers %v: status = %d, want %d", tt.headers, rec.Code, tt.want)
		}
	}
	if len(programs.stored) != 0 {
		t.Errorf("stored = %d programs, want 0", len(programs.stored))
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/programs/preview", body, nil); rec.Code != http.StatusOK {
		t.Errorf("preview: status = %d, want 200", rec.Code)
	}
}

// TestCreateProgramValidation verifies invalid requests and malformed JSON
// map to 400.
func TestCreateProgramValidation(t *testing.T) {
	s, _, _ := newTestServer()
	for _, body := range []string{
		`{"sexe":"Homme","niveau":"Débutant","nbSeances":0,"objectif":"force"}`,
		`{"sexe":"Robot","niveau":"Débutant","nbSeances":3,"objectif":"force"}`,
		`{"sexe":`,
	} {
		rec := do(t, s, http.MethodPost, "/api/v1/programs", body, map[string]string{"X-API-Key": testKey})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

// TestPreviewInternalError verifies that unexpected service errors map to 500.
func TestPreviewInternalError(t *testing.T) {
	s, programs, _ := newTestServer()
	programs.err = errors.New("loading catalog: connection refused")
	rec := do(t, s, http.MethodPost, "/api/v1/programs/preview",
		`{"sexe":"Femme","niveau":"Confirmé","nbSeances":2,"objectif":"tonification"}`, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

// TestGetProgram verifies lookup, unknown IDs and malformed IDs.
func TestGetProgram(t *testing.T) {
	s, programs, _ := newTestServer()
	id := uuid.New()
	programs.stored[id] = &storage.ProgramRecord{ID: id}

	if rec := do(t, s, http.MethodGet, "/api/v1/programs/"+id.String(), "", nil); rec.Code != http.StatusOK {
		t.Errorf("existing: status = %d, want 200", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/programs/"+uuid.NewString(), "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown: status = %d, want 404", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/programs/not-a-uuid", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed: status = %d, want 400", rec.Code)
	}
}

// TestListProgramsEmpty verifies an empty listing is a JSON array, not null.
func TestListProgramsEmpty(t *testing.T) {
	s, _, _ := newTestServer()
	rec := do(t, s, http.MethodGet, "/api/v1/programs", "", nil)
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/programs?limit=-3", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("negative limit: status = %d, want 400", rec.Code)
	}
}

// TestRegenerateRequiresKey verifies the regenerate route is behind the API key.
func TestRegenerateRequiresKey(t *testing.T) {
	s, programs, _ := newTestServer()
	id := uuid.New()
	programs.stored[id] = &storage.ProgramRecord{ID: id}
	path := "/api/v1/programs/" + id.String() + "/regenerate"

	if rec := do(t, s, http.MethodPost, path, "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("without key: status = %d, want 401", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, path, "", map[string]string{"X-API-Key": testKey}); rec.Code != http.StatusOK {
		t.Errorf("with key: status = %d, want 200", rec.Code)
	}
}

// TestCatalogIngest verifies the partition route, format detection from the
// content type and the API key requirement.
func TestCatalogIngest(t *testing.T) {
	s, _, ing := newTestServer()
	auth := map[string]string{"X-API-Key": testKey, "Content-Type": "application/x-yaml"}

	rec := do(t, s, http.MethodPost, "/api/v1/catalog/warmup", "- nom: Jumping jacks\n", auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if ing.partition != models.PartitionWarmup || ing.format != ingest.FormatYAML {
		t.Errorf("ingest called with %q/%d", ing.partition, ing.format)
	}

	if rec := do(t, s, http.MethodPost, "/api/v1/catalog/stretching", "[]", auth); rec.Code != http.StatusNotFound {
		t.Errorf("unknown partition: status = %d, want 404", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/catalog/main", "[]", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("without key: status = %d, want 401", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/catalog/main", "{", map[string]string{"X-API-Key": testKey}); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed: status = %d, want 400", rec.Code)
	}
}

// TestClassify verifies that a posted record comes back classified.
func TestClassify(t *testing.T) {
	s, _, _ := newTestServer()
	rec := do(t, s, http.MethodPost, "/api/v1/catalog/classify",
		`{"nom":"Squat barre","groupe":"quads"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var got catalog.Classification
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Principal || got.Group != catalog.GroupQuads {
		t.Errorf("classification = %+v, want principal quadriceps", got)
	}

	if rec := do(t, s, http.MethodPost, "/api/v1/catalog/classify", `{"groupe":"dos"}`, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("nameless: status = %d, want 400", rec.Code)
	}
}

// TestSplitTemplates verifies the template listing is served.
func TestSplitTemplates(t *testing.T) {
	s, _, _ := newTestServer()
	rec := do(t, s, http.MethodGet, "/api/v1/split-templates", "", nil)
	var got []split.Template
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(split.Templates()) {
		t.Errorf("templates = %d, want %d", len(got), len(split.Templates()))
	}
}

// TestImportLogsEmpty verifies an empty log listing is a JSON array.
func TestImportLogsEmpty(t *testing.T) {
	s, _, _ := newTestServer()
	rec := do(t, s, http.MethodGet, "/api/v1/import-logs", "", nil)
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

// TestMountRequiresKey verifies that mounted handlers are only reachable with
// the API key.
func TestMountRequiresKey(t *testing.T) {
	s, _, _ := newTestServer()
	s.Mount("/mcp", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	if rec := do(t, s, http.MethodPost, "/mcp", "{}", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("without key: status = %d, want 401", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/mcp", "{}", map[string]string{"X-API-Key": testKey}); rec.Code != http.StatusAccepted {
		t.Errorf("with key: status = %d, want 202", rec.Code)
	}
}
