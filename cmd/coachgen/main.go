package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"

	"github.com/claude/coachgen/internal/config"
	"github.com/claude/coachgen/internal/importer"
	"github.com/claude/coachgen/internal/ingest"
	"github.com/claude/coachgen/internal/mcp"
	"github.com/claude/coachgen/internal/program"
	"github.com/claude/coachgen/internal/regen"
	"github.com/claude/coachgen/internal/server"
	"github.com/claude/coachgen/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("coachgen starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Run migrations
	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Connect database
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	provider := ingest.NewProvider(db, log)
	seedCatalog(ctx, cfg, db, provider, log)

	programs := program.NewService(db, log, program.WithSeed(cfg.Generator.Seed))

	// Auto-regeneration
	if cfg.Regeneration.Enabled {
		sched, err := regen.New(programs, cfg.Regeneration.Schedule, log)
		if err != nil {
			log.Error("failed to create scheduler", "error", err)
			os.Exit(1)
		}
		sched.Start(ctx)
		defer sched.Stop()
	}

	// Create server
	srv := server.New(programs, provider, db, cfg.Auth.APIKey, log)
	mcpSrv := mcp.New(mcp.Local{Service: programs, DB: db}, Version, log)
	srv.Mount("/mcp", mcpserver.NewStreamableHTTPServer(mcpSrv))

	// Start server — tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// seedCatalog imports the configured catalog directory when the database holds
// no exercises yet.
func seedCatalog(ctx context.Context, cfg *config.Config, db *storage.DB, provider *ingest.Provider, log *slog.Logger) {
	if cfg.Catalog.Dir == "" {
		return
	}
	stats, err := db.CatalogStats(ctx)
	if err != nil {
		log.Warn("catalog stats failed, skipping seed", "error", err)
		return
	}
	for _, p := range stats {
		if p.Exercises > 0 {
			return
		}
	}

	imported, err := importer.New(provider, log, false).Import(ctx, cfg.Catalog.Dir)
	if err != nil {
		log.Error("catalog seed failed", "dir", cfg.Catalog.Dir, "error", err)
		return
	}
	log.Info("catalog seeded", "dir", cfg.Catalog.Dir,
		"files", imported.FilesProcessed, "stored", imported.RecordsStored)
}
