package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("coachgen", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("coachgen training program generator. Generate multi-session programs from the exercise catalog, "+
			"look up stored programs, and inspect how catalog records are classified. "+
			"Sexe is Homme or Femme; niveau is Débutant, Intermédiaire or Confirmé; 1 to 7 sessions per week."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGenerateProgram, Handler: h.generateProgram},
		server.ServerTool{Tool: toolGetProgram, Handler: h.getProgram},
		server.ServerTool{Tool: toolListPrograms, Handler: h.listPrograms},
		server.ServerTool{Tool: toolClassifyExercise, Handler: h.classifyExercise},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resSplitTemplates, Handler: h.splitTemplates},
		server.ServerResource{Resource: resCatalogStats, Handler: h.catalogStats},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resSplitTemplates = mcp.NewResource(
	"coachgen://split_templates",
	"Split Templates",
	mcp.WithResourceDescription("Target muscle groups of every session for each sex, session count and variant"),
	mcp.WithMIMEType("application/json"),
)

var resCatalogStats = mcp.NewResource(
	"coachgen://catalog_stats",
	"Catalog Stats",
	mcp.WithResourceDescription("Exercise counts per catalog partition, by muscle group and ergometer kind"),
	mcp.WithMIMEType("application/json"),
)
