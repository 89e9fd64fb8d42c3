// ABOUTME: Main entry point for the recall MCP server with stdio transport
// ABOUTME: Initializes storage, memory service and MCP tools
package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/quickpet/recall/internal/config"
	"github.com/quickpet/recall/internal/core"
	"github.com/quickpet/recall/internal/llm"
	"github.com/quickpet/recall/internal/mcp"
	"github.com/quickpet/recall/internal/storage/sqlite"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	personality, err := config.LoadPersonality(cfg.PersonalityPath)
	if err != nil {
		log.Fatalf("Failed to load personality config: %v", err)
	}

	// Initialize storage with XDG-compliant paths
	var store *sqlite.Storage
	if cfg.DBPath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	service := core.NewService(store, cfg, personality)
	defer service.Close()

	// Rich summaries are optional; everything works without an API key
	if cfg.OpenAIKey != "" {
		if client, cerr := llm.NewOpenAIClient(cfg); cerr == nil {
			service.SetSummarizer(client)
			if cfg.LLMExtractor {
				service.SetExtractor(client)
				log.Println("LLM preference extractor enabled")
			}
		} else {
			log.Printf("Warning: failed to initialize OpenAI client: %v", cerr)
		}
	} else {
		log.Println("OPENAI_API_KEY not set - rich session summaries disabled")
	}

	// Close out sessions left active by a previous run
	if _, err := service.RestoreOnStartup(); err != nil {
		log.Printf("Warning: startup restore failed: %v", err)
	}

	server := mcpserver.NewMCPServer(
		"Recall Conversation Memory",
		"0.1.0",
	)
	mcp.RegisterTools(server, service)

	log.Println("Recall MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
