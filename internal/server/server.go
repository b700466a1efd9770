package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/coachgen/internal/generator"
	"github.com/claude/coachgen/internal/ingest"
	"github.com/claude/coachgen/internal/models"
	"github.com/claude/coachgen/internal/program"
	"github.com/claude/coachgen/internal/storage"
)

// Programs is the program service used by the handlers.
type Programs interface {
	Preview(ctx context.Context, req generator.Request) (models.Program, error)
	Create(ctx context.Context, req program.CreateRequest) (*storage.ProgramRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*storage.ProgramRecord, error)
	List(ctx context.Context, limit int) ([]storage.ProgramSummary, error)
	Regenerate(ctx context.Context, id uuid.UUID) (*storage.ProgramRecord, error)
}

// CatalogIngester stores posted catalog partitions.
type CatalogIngester interface {
	Ingest(ctx context.Context, source, partition string, data []byte, f ingest.Format) (*ingest.Result, error)
}

// Store serves the read-only catalog and import endpoints.
type Store interface {
	CatalogStats(ctx context.Context) ([]storage.PartitionStats, error)
	QueryImportLogs(ctx context.Context, limit int) ([]storage.ImportLog, error)
}

var (
	_ Programs        = (*program.Service)(nil)
	_ CatalogIngester = (*ingest.Provider)(nil)
	_ Store           = (*storage.DB)(nil)
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	programs Programs
	catalog  CatalogIngester
	store    Store
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(programs Programs, catalog CatalogIngester, store Store, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		programs: programs,
		catalog:  catalog,
		store:    store,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/stats", s.handleCatalogStats)
		r.Post("/classify", s.handleClassify)
		// Partition replacement requires the API key
		r.With(APIKeyAuth(s.apiKey)).Post("/{partition}", s.handleCatalogIngest)
	})

	// Reads and previews are open; stored programs change only with the API key
	s.router.Route("/api/v1/programs", func(r chi.Router) {
		r.Get("/", s.handleListPrograms)
		r.Post("/preview", s.handlePreviewProgram)
		r.Get("/{id}", s.handleGetProgram)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/", s.handleCreateProgram)
			r.Post("/{id}/regenerate", s.handleRegenerateProgram)
		})
	})

	s.router.Get("/api/v1/split-templates", s.handleSplitTemplates)
	s.router.Get("/api/v1/import-logs", s.handleImportLogs)
}

// Mount attaches an extra handler, such as the MCP endpoint, under pattern.
// Mounted handlers can store programs, so they sit behind the API key.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, APIKeyAuth(s.apiKey)(h))
}
