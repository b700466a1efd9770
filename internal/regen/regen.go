// Package regen periodically redraws the sessions of programs flagged for
// auto-regeneration.
package regen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron"

	"github.com/claude/coachgen/internal/program"
)

// ErrBusy is returned by Run when a previous run has not finished.
var ErrBusy = errors.New("regeneration already running")

// runTimeout bounds a single scheduled run.
const runTimeout = 10 * time.Minute

// Job regenerates every flagged program.
type Job interface {
	RegenerateAll(ctx context.Context) (int, error)
}

var _ Job = (*program.Service)(nil)

// Scheduler runs Job on a cron schedule. Runs never overlap.
type Scheduler struct {
	cron    *cron.Cron
	job     Job
	log     *slog.Logger
	running atomic.Bool

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Scheduler for a six-field cron spec (seconds first) or a
// descriptor such as "@daily".
func New(job Job, schedule string, log *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{cron: cron.New(), job: job, log: log}
	if err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return nil, fmt.Errorf("parsing regeneration schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins the schedule. Runs are cancelled when ctx ends or Stop is
// called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()
	s.cron.Start()
	s.log.Info("regeneration scheduler started")
}

// Stop halts the schedule and cancels a run in progress.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	base := s.ctx
	s.mu.Unlock()
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithTimeout(base, runTimeout)
	defer cancel()

	if _, err := s.Run(ctx); err != nil && !errors.Is(err, ErrBusy) {
		s.log.Error("scheduled regeneration failed", "error", err)
	}
}

// Run regenerates flagged programs now and returns how many were updated.
func (s *Scheduler) Run(ctx context.Context) (int, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn("skipping regeneration, previous run still active")
		return 0, ErrBusy
	}
	defer s.running.Store(false)

	start := time.Now()
	n, err := s.job.RegenerateAll(ctx)
	if err != nil {
		return n, fmt.Errorf("regenerating programs: %w", err)
	}
	s.log.Info("programs regenerated", "count", n, "duration", time.Since(start).String())
	return n, nil
}
