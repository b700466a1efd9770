package mcp

import (
	"context"

	"github.com/google/uuid"

	"github.com/claude/coachgen/internal/client"
	"github.com/claude/coachgen/internal/generator"
	"github.com/claude/coachgen/internal/models"
	"github.com/claude/coachgen/internal/program"
	"github.com/claude/coachgen/internal/storage"
)

// DataSource abstracts program generation and storage for MCP tools. Local
// (in-process) and *client.Client (remote via REST API) satisfy it.
type DataSource interface {
	Preview(ctx context.Context, req generator.Request) (models.Program, error)
	Create(ctx context.Context, req program.CreateRequest) (*storage.ProgramRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*storage.ProgramRecord, error)
	List(ctx context.Context, limit int) ([]storage.ProgramSummary, error)
	CatalogStats(ctx context.Context) ([]storage.PartitionStats, error)
}

// Local serves MCP requests from the program service and database of the
// running server.
type Local struct {
	*program.Service
	DB *storage.DB
}

// CatalogStats implements DataSource.
func (l Local) CatalogStats(ctx context.Context) ([]storage.PartitionStats, error) {
	return l.DB.CatalogStats(ctx)
}

// Compile-time checks.
var (
	_ DataSource = Local{}
	_ DataSource = (*client.Client)(nil)
)
