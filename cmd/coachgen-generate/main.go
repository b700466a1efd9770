package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/claude/coachgen/internal/client"
	"github.com/claude/coachgen/internal/generator"
	"github.com/claude/coachgen/internal/history"
	"github.com/claude/coachgen/internal/ingest"
	"github.com/claude/coachgen/internal/models"
	"github.com/claude/coachgen/internal/program"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	catalogDir := flag.String("catalog", "", "catalog directory for local generation")
	serverURL := flag.String("server", "", "coachgen server URL; generates remotely instead of from -catalog")
	apiKey := flag.String("api-key", os.Getenv("COACHGEN_AUTH_API_KEY"), "API key for -server")
	sexe := flag.String("sexe", "Homme", "Homme or Femme")
	niveau := flag.String("niveau", "Débutant", "Débutant, Intermédiaire or Confirmé")
	seances := flag.Int("seances", 3, "sessions per week (1-7)")
	objectif := flag.String("objectif", "force", "training objective")
	seed := flag.Uint64("seed", 0, "fixed random seed for local generation (0 = random)")
	save := flag.Bool("save", false, "with -server, store the program on the server")
	historyDir := flag.String("history", defaultHistoryDir(), "local history directory (empty disables)")
	list := flag.Int("list", 0, "print the N most recent history entries and exit")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("coachgen-generate", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := context.Background()

	var hist *history.Store
	if *historyDir != "" {
		var err error
		hist, err = history.Open(*historyDir)
		if err != nil {
			log.Error("failed to open history", "error", err)
			os.Exit(1)
		}
		defer hist.Close()
	}

	if *list > 0 {
		if hist == nil {
			log.Error("-list needs a history directory")
			os.Exit(1)
		}
		entries, err := hist.List(ctx, *list)
		if err != nil {
			log.Error("listing history failed", "error", err)
			os.Exit(1)
		}
		printJSON(entries)
		return
	}

	req := generator.Request{Sexe: *sexe, Niveau: *niveau, NbSeances: *seances, Objectif: *objectif}
	if err := req.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	var (
		p           models.Program
		catalogHash string
	)
	switch {
	case *serverURL != "":
		c := client.New(*serverURL, *apiKey)
		if *save {
			rec, err := c.Create(ctx, program.CreateRequest{Request: req})
			if err != nil {
				log.Error("remote generation failed", "error", err)
				os.Exit(1)
			}
			p = rec.Program
		} else {
			var err error
			if p, err = c.Preview(ctx, req); err != nil {
				log.Error("remote generation failed", "error", err)
				os.Exit(1)
			}
		}
		catalogHash = "remote:" + *serverURL

	case *catalogDir != "":
		raw, result, err := ingest.LoadDir(*catalogDir)
		if err != nil {
			log.Error("failed to load catalog", "error", err)
			os.Exit(1)
		}
		log.Info("catalog loaded", "files", result.Files, "records", result.RecordsReceived)
		if result.Message != "" {
			log.Warn(result.Message)
		}
		catalogHash, err = history.HashCatalog(raw)
		if err != nil {
			log.Warn("hashing catalog failed", "error", err)
		}

		opts := []generator.Option{generator.WithLogger(log)}
		if *seed != 0 {
			opts = append(opts, generator.WithSource(rand.New(rand.NewPCG(*seed, *seed))))
		}
		p = generator.New(generator.NewCatalog(raw), opts...).Generate(req)

	default:
		fmt.Fprintf(os.Stderr, "Usage: coachgen-generate (-catalog <dir> | -server <URL>) [-sexe Homme] [-niveau Débutant] [-seances 3] [-objectif force]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if hist != nil {
		if err := hist.Record(ctx, &p, catalogHash); err != nil {
			log.Warn("recording history failed", "error", err)
		}
	}
	printJSON(p)
}

func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".coachgen")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encoding output: %v\n", err)
		os.Exit(1)
	}
}

