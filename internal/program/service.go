// Package program generates, stores and regenerates training programs.
package program

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/claude/coachgen/internal/generator"
	"github.com/claude/coachgen/internal/models"
	"github.com/claude/coachgen/internal/storage"
)

// Store is the persistence used by Service.
type Store interface {
	LoadCatalog(ctx context.Context) (*models.RawCatalog, error)
	InsertProgram(ctx context.Context, rec storage.ProgramRecord) error
	GetProgram(ctx context.Context, id uuid.UUID) (*storage.ProgramRecord, error)
	ListPrograms(ctx context.Context, limit int) ([]storage.ProgramSummary, error)
	ListAutoRegeneratePrograms(ctx context.Context) ([]storage.ProgramRecord, error)
	UpdateProgramDocument(ctx context.Context, id uuid.UUID, program models.Program) error
}

var _ Store = (*storage.DB)(nil)

// CreateRequest is a generation request plus storage options.
type CreateRequest struct {
	generator.Request
	AutoRegenerate bool `json:"autoRegenerate"`
}

// Service generates programs from the stored catalog.
type Service struct {
	store Store
	log   *slog.Logger
	seed  uint64
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithSeed makes every generation start from the same random state. Zero
// keeps generation random.
func WithSeed(seed uint64) Option {
	return func(s *Service) { s.seed = seed }
}

// WithClock overrides the clock used to stamp programs.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service.
func NewService(store Store, log *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// generator builds a Generator over the current catalog. The catalog is read
// once per call so imports take effect on the next request.
func (s *Service) generator(ctx context.Context) (*generator.Generator, error) {
	raw, err := s.store.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	opts := []generator.Option{generator.WithLogger(s.log), generator.WithNow(s.now)}
	if s.seed != 0 {
		opts = append(opts, generator.WithSource(rand.New(rand.NewPCG(s.seed, s.seed))))
	}
	return generator.New(generator.NewCatalog(raw), opts...), nil
}

// Preview validates req and generates a program without storing it.
func (s *Service) Preview(ctx context.Context, req generator.Request) (models.Program, error) {
	if err := req.Validate(); err != nil {
		return models.Program{}, err
	}
	g, err := s.generator(ctx)
	if err != nil {
		return models.Program{}, err
	}
	return g.Generate(req), nil
}

// Create generates a program, assigns it an ID and stores it.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*storage.ProgramRecord, error) {
	p, err := s.Preview(ctx, req.Request)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.New()

	rec := storage.ProgramRecord{
		ID:             p.ID,
		Sex:            p.Sex,
		Level:          req.Niveau,
		Sessions:       req.NbSeances,
		Objective:      req.Objectif,
		AutoRegenerate: req.AutoRegenerate,
		CreatedAt:      p.CreatedAt,
		Program:        p,
	}
	if err := s.store.InsertProgram(ctx, rec); err != nil {
		return nil, fmt.Errorf("storing program: %w", err)
	}
	s.log.Info("program created",
		"id", p.ID, "sexe", p.Sex, "niveau", p.Level, "sessions", len(p.Sessions), "variante", p.Variant)
	return &rec, nil
}

// Get returns a stored program.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*storage.ProgramRecord, error) {
	return s.store.GetProgram(ctx, id)
}

// List returns the most recent programs.
func (s *Service) List(ctx context.Context, limit int) ([]storage.ProgramSummary, error) {
	return s.store.ListPrograms(ctx, limit)
}

// Regenerate draws new sessions for a stored program from its original request.
// The program keeps its ID and creation time.
func (s *Service) Regenerate(ctx context.Context, id uuid.UUID) (*storage.ProgramRecord, error) {
	rec, err := s.store.GetProgram(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := s.generator(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.regenerate(ctx, g, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RegenerateAll regenerates every program flagged for auto-regeneration and
// returns how many were updated. A failing program does not stop the others.
func (s *Service) RegenerateAll(ctx context.Context) (int, error) {
	recs, err := s.store.ListAutoRegeneratePrograms(ctx)
	if err != nil {
		return 0, err
	}
	if len(recs) == 0 {
		return 0, nil
	}
	g, err := s.generator(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range recs {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		if err := s.regenerate(ctx, g, &recs[i]); err != nil {
			s.log.Warn("regeneration failed", "id", recs[i].ID, "error", err)
			continue
		}
		updated++
	}
	return updated, nil
}

func (s *Service) regenerate(ctx context.Context, g *generator.Generator, rec *storage.ProgramRecord) error {
	p := g.Generate(requestOf(rec))
	p.ID = rec.ID
	p.CreatedAt = rec.CreatedAt
	if err := s.store.UpdateProgramDocument(ctx, rec.ID, p); err != nil {
		return fmt.Errorf("updating program %s: %w", rec.ID, err)
	}
	now := s.now()
	rec.RegeneratedAt = &now
	rec.Program = p
	return nil
}

// requestOf rebuilds the generation request stored alongside a program.
func requestOf(rec *storage.ProgramRecord) generator.Request {
	return generator.Request{
		Sexe:      rec.Sex,
		Niveau:    rec.Level,
		NbSeances: rec.Sessions,
		Objectif:  rec.Objective,
	}
}
