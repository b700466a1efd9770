package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/coachgen/internal/catalog"
	"github.com/claude/coachgen/internal/generator"
	"github.com/claude/coachgen/internal/ingest"
	"github.com/claude/coachgen/internal/models"
	"github.com/claude/coachgen/internal/program"
	"github.com/claude/coachgen/internal/split"
	"github.com/claude/coachgen/internal/storage"
)

// maxCatalogBody bounds a posted catalog partition.
const maxCatalogBody = 16 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePreviewProgram(w http.ResponseWriter, r *http.Request) {
	var req generator.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	p, err := s.programs.Preview(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var req program.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	rec, err := s.programs.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	programs, err := s.programs.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if programs == nil {
		programs = []storage.ProgramSummary{}
	}
	writeJSON(w, http.StatusOK, programs)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid program ID"})
		return
	}
	rec, err := s.programs.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRegenerateProgram(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid program ID"})
		return
	}
	rec, err := s.programs.Regenerate(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCatalogIngest(w http.ResponseWriter, r *http.Request) {
	partition := chi.URLParam(r, "partition")
	if !models.IsPartition(partition) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown catalog partition " + strconv.Quote(partition)})
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCatalogBody))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
		return
	}

	result, err := s.catalog.Ingest(r.Context(), "api", partition, data, ingest.DetectFormat(r.Header.Get("Content-Type")))
	if err != nil {
		s.log.Error("catalog ingest error", "partition", partition, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCatalogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.CatalogStats(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleClassify normalizes a single posted record and returns how the
// generator sees it.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var raw models.RawExercise
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	partition := r.URL.Query().Get("partition")
	if partition == "" {
		partition = models.PartitionMain
	}
	if !models.IsPartition(partition) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown catalog partition " + strconv.Quote(partition)})
		return
	}
	normalized := catalog.NormalizePartition(partition, []models.RawExercise{raw})
	if len(normalized) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "record has no name"})
		return
	}
	writeJSON(w, http.StatusOK, catalog.Describe(normalized[0]))
}

func (s *Server) handleSplitTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, split.Templates())
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	logs, err := s.store.QueryImportLogs(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if logs == nil {
		logs = []storage.ImportLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

// writeError maps service errors to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, generator.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseLimit reads the optional limit query parameter. Zero means the store
// default.
func parseLimit(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New("limit must be a non-negative integer")
	}
	return n, nil
}
