// Package generator builds training programs from a normalized exercise catalog.
//
// Generation is synchronous and holds no shared mutable state: every call owns
// its session histories. The only source of variation is the random Source.
package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/claude/coachgen/internal/catalog"
	"github.com/claude/coachgen/internal/models"
	"github.com/claude/coachgen/internal/split"
)

// ErrInvalidRequest is returned by Request.Validate.
var ErrInvalidRequest = errors.New("invalid request")

// Request describes the trainee a program is generated for.
type Request struct {
	Sexe      string `json:"sexe"`
	Niveau    string `json:"niveau"`
	NbSeances int    `json:"nbSeances"`
	Objectif  string `json:"objectif"`
}

// Validate checks the request fields. Generate itself accepts any request and
// degrades silently; callers exposing generation to users validate first.
func (r Request) Validate() error {
	if _, ok := split.ParseSex(r.Sexe); !ok {
		return fmt.Errorf("%w: unknown sexe %q", ErrInvalidRequest, r.Sexe)
	}
	if catalog.ParseLevel(r.Niveau) == 0 {
		return fmt.Errorf("%w: unknown niveau %q", ErrInvalidRequest, r.Niveau)
	}
	if r.NbSeances < split.MinSessions || r.NbSeances > split.MaxSessions {
		return fmt.Errorf("%w: nbSeances must be between %d and %d, got %d",
			ErrInvalidRequest, split.MinSessions, split.MaxSessions, r.NbSeances)
	}
	if strings.TrimSpace(r.Objectif) == "" {
		return fmt.Errorf("%w: objectif is required", ErrInvalidRequest)
	}
	return nil
}

// Catalog holds the normalized partitions. It is read-only during generation.
type Catalog struct {
	Main      []catalog.Exercise
	Warmup    []catalog.Exercise
	Cooldown  []catalog.Exercise
	Ergometer []catalog.Exercise
}

// NewCatalog normalizes every partition of a raw catalog.
func NewCatalog(raw *models.RawCatalog) Catalog {
	return Catalog{
		Main:      catalog.NormalizePartition(models.PartitionMain, raw.Main),
		Warmup:    catalog.NormalizePartition(models.PartitionWarmup, raw.Warmup),
		Cooldown:  catalog.NormalizePartition(models.PartitionCooldown, raw.Cooldown),
		Ergometer: catalog.NormalizePartition(models.PartitionErgometer, raw.Ergometer),
	}
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource fixes the random source. The source is used by every Generate
// call, so it must be safe for concurrent use if the Generator is shared.
func WithSource(src Source) Option {
	return func(g *Generator) { g.src = src }
}

// WithLogger sets the logger used for degenerate inputs.
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// WithNow overrides the clock used to stamp programs.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// Generator assembles programs from a catalog.
type Generator struct {
	catalog Catalog
	src     Source
	log     *slog.Logger
	now     func() time.Time
}

// New creates a Generator. Without WithSource each Generate call draws from a
// freshly seeded source.
func New(c Catalog, opts ...Option) *Generator {
	g := &Generator{
		catalog: c,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// build carries the per-call inputs shared by the selectors.
type build struct {
	catalog   Catalog
	src       Source
	level     int
	objective string
}

// Generate builds a program for req. Missing picks are omitted; an unknown sex
// or session count yields a program without sessions.
func (g *Generator) Generate(req Request) models.Program {
	src := g.src
	if src == nil {
		src = newSource()
	}

	variant := split.VariantA
	if chance(src, 0.5) {
		variant = split.VariantB
	}
	sex, _ := split.ParseSex(req.Sexe)
	plan := split.Plan(sex, req.NbSeances, variant)
	if len(plan) == 0 {
		g.log.Warn("empty split, generating program without sessions",
			"sexe", req.Sexe, "nbSeances", req.NbSeances, "variante", variant)
	}

	level := catalog.ParseLevel(req.Niveau)
	if level == 0 {
		level = catalog.LevelBeginner
	}
	b := &build{catalog: g.catalog, src: src, level: level, objective: req.Objectif}

	sessions := make([]models.Session, 0, len(plan))
	for i, targets := range plan {
		sessions = append(sessions, b.session(i+1, targets))
	}

	sexLabel := string(sex)
	if sexLabel == "" {
		sexLabel = req.Sexe
	}
	return models.Program{
		Name:      fmt.Sprintf("%s - %d séances", req.Objectif, req.NbSeances),
		Objective: req.Objectif,
		Level:     req.Niveau,
		Sex:       sexLabel,
		Variant:   string(variant),
		CreatedAt: g.now(),
		Sessions:  sessions,
	}
}

// session fills the four blocks in selection order: the main block first so
// that its picks are excluded from the others.
func (b *build) session(number int, targets []string) models.Session {
	s := models.NewSession(number, targets)
	st := newSessionState(targets)
	s.Main = b.mainBlock(st)
	s.Warmup = b.warmupBlock(st)
	s.Bonus = b.bonusBlock(st, number)
	s.Cooldown = b.cooldownBlock(st)
	return s
}

// resolve produces the output form of a pick: parameters, role and display
// options.
func (b *build) resolve(e catalog.Exercise, section, role string, forceReps bool) models.ResolvedExercise {
	r := resolveParams(e, b.objective, forceReps, section, b.src)
	r.Role = role
	r.OptionsEnabled, r.OptionsOrder = displayOptions(r, section, e.IsStretch)
	return r
}
