// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to use conversation memory via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/quickpet/recall/internal/config"
	"github.com/quickpet/recall/internal/core"
	"github.com/quickpet/recall/internal/llm"
	"github.com/quickpet/recall/internal/mcp"
	"github.com/quickpet/recall/internal/storage/sqlite"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs recall as an MCP (Model Context Protocol) server, exposing
conversation memory tools over stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by the agent host)
  recall mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "recall": {
  #       "command": "recall",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	personality, err := config.LoadPersonality(cfg.PersonalityPath)
	if err != nil {
		return fmt.Errorf("loading personality: %w", err)
	}

	var store *sqlite.Storage
	if cfg.DBPath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	service := core.NewService(store, cfg, personality)

	// Rich summaries are optional; everything works without an API key
	if cfg.OpenAIKey != "" {
		client, cerr := llm.NewOpenAIClient(cfg)
		if cerr != nil {
			log.Printf("Warning: failed to initialize OpenAI client: %v", cerr)
		} else {
			service.SetSummarizer(client)
			if cfg.LLMExtractor {
				service.SetExtractor(client)
			}
			if verbose {
				log.Println("OpenAI summarizer enabled")
			}
		}
	}

	if ended, rerr := service.RestoreOnStartup(); rerr != nil {
		log.Printf("Warning: startup restore failed: %v", rerr)
	} else if len(ended) > 0 && !quiet {
		log.Printf("Closed %d stale session(s) from previous run", len(ended))
	}

	server := mcpserver.NewMCPServer(
		"Recall Conversation Memory",
		"0.1.0",
	)
	mcp.RegisterTools(server, service)

	// Graceful shutdown: end live sessions and close the store
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Recall MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}
		if err := service.Close(); err != nil {
			log.Printf("Warning: error closing service: %v", err)
		}
		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		service.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
