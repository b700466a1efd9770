package mcp

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/coachgen/internal/catalog"
	"github.com/claude/coachgen/internal/generator"
	"github.com/claude/coachgen/internal/models"
	"github.com/claude/coachgen/internal/program"
	"github.com/claude/coachgen/internal/storage"
)

// --- Tool definitions ---

var toolGenerateProgram = mcp.NewTool("generate_program",
	mcp.WithDescription("Generate a multi-session training program. Each session has a warmup, a main block of principal and complementary exercises per target muscle group, a bonus block and a cooldown. Set save=true to store the program and get an ID."),
	mcp.WithString("sexe", mcp.Required(), mcp.Description("Trainee sex"), mcp.Enum("Homme", "Femme")),
	mcp.WithString("niveau", mcp.Required(), mcp.Description("Experience level"), mcp.Enum("Débutant", "Intermédiaire", "Confirmé")),
	mcp.WithNumber("nb_seances", mcp.Required(), mcp.Description("Sessions per week (1 to 7)")),
	mcp.WithString("objectif", mcp.Required(), mcp.Description("Training objective (e.g. 'force', 'hypertrophie', 'perte de poids', 'endurance')")),
	mcp.WithBoolean("save", mcp.Description("Store the program. Defaults to false (preview only).")),
	mcp.WithBoolean("auto_regenerate", mcp.Description("When saved, redraw the sessions on the regeneration schedule.")),
)

var toolGetProgram = mcp.NewTool("get_program",
	mcp.WithDescription("Retrieve a stored program with all of its sessions."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Program ID (UUID)")),
)

var toolListPrograms = mcp.NewTool("list_programs",
	mcp.WithDescription("List the most recently stored programs without their sessions."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of programs. Defaults to 20.")),
)

var toolClassifyExercise = mcp.NewTool("classify_exercise",
	mcp.WithDescription("Show how the generator classifies a catalog record: canonical muscle group, principal or isolation, movement and semantic families, ergometer kind, static hold or stretch."),
	mcp.WithString("nom", mcp.Required(), mcp.Description("Exercise name")),
	mcp.WithString("groupe", mcp.Description("Muscle group as authored (synonyms accepted)")),
	mcp.WithString("materiel", mcp.Description("Equipment")),
	mcp.WithString("niveau", mcp.Description("Comma-separated levels")),
	mcp.WithString("usage", mcp.Description("Comma-separated usages (e.g. 'echauffement, cardio')")),
	mcp.WithString("partition", mcp.Description("Catalog partition. Defaults to main."), mcp.Enum(models.Partitions...)),
)

// --- Tool handlers ---

func (h *handlers) generateProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sexe, err := req.RequireString("sexe")
	if err != nil {
		return mcp.NewToolResultError("sexe parameter is required"), nil
	}
	niveau, err := req.RequireString("niveau")
	if err != nil {
		return mcp.NewToolResultError("niveau parameter is required"), nil
	}
	objectif, err := req.RequireString("objectif")
	if err != nil {
		return mcp.NewToolResultError("objectif parameter is required"), nil
	}
	greq := generator.Request{
		Sexe:      sexe,
		Niveau:    niveau,
		NbSeances: req.GetInt("nb_seances", 0),
		Objectif:  objectif,
	}
	if err := greq.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !req.GetBool("save", false) {
		p, err := h.ds.Preview(ctx, greq)
		if err != nil {
			h.log.Error("mcp generate_program", "error", err)
			return mcp.NewToolResultError("generation failed: " + err.Error()), nil
		}
		return jsonResult(p)
	}

	rec, err := h.ds.Create(ctx, program.CreateRequest{
		Request:        greq,
		AutoRegenerate: req.GetBool("auto_regenerate", false),
	})
	if err != nil {
		h.log.Error("mcp generate_program", "error", err)
		return mcp.NewToolResultError("generation failed: " + err.Error()), nil
	}
	return jsonResult(rec)
}

func (h *handlers) getProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid program ID"), nil
	}

	rec, err := h.ds.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("program not found"), nil
	}
	if err != nil {
		h.log.Error("mcp get_program", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(rec)
}

func (h *handlers) listPrograms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	programs, err := h.ds.List(ctx, limit)
	if err != nil {
		h.log.Error("mcp list_programs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if programs == nil {
		programs = []storage.ProgramSummary{}
	}
	return jsonResult(programs)
}

// classifyExercise needs no data source: classification is a pure function of
// the record.
func (h *handlers) classifyExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("nom")
	if err != nil {
		return mcp.NewToolResultError("nom parameter is required"), nil
	}
	raw := models.RawExercise{"nom": name}
	for _, key := range []string{"groupe", "materiel", "niveau", "usage"} {
		if v := req.GetString(key, ""); v != "" {
			raw[key] = v
		}
	}
	partition := req.GetString("partition", models.PartitionMain)
	if !models.IsPartition(partition) {
		return mcp.NewToolResultError("unknown partition " + partition), nil
	}

	normalized := catalog.NormalizePartition(partition, []models.RawExercise{raw})
	if len(normalized) == 0 {
		return mcp.NewToolResultError("record has no usable name"), nil
	}
	return jsonResult(catalog.Describe(normalized[0]))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
