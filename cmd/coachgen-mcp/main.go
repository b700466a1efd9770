package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/coachgen/internal/client"
	"github.com/claude/coachgen/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// coachgen-mcp serves the MCP tools over stdio, backed by a remote coachgen
// server (typically reached over Tailscale).
func main() {
	serverURL := flag.String("server", os.Getenv("COACHGEN_SERVER_URL"), "coachgen server URL")
	apiKey := flag.String("api-key", os.Getenv("COACHGEN_AUTH_API_KEY"), "API key for write routes")
	flag.Parse()

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: coachgen-mcp -server <URL> [-api-key KEY]\n")
		os.Exit(1)
	}

	s := mcp.New(client.New(*serverURL, *apiKey), Version, log)
	log.Info("mcp stdio server starting", "server", *serverURL, "version", Version)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
