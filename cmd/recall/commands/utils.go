// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Service wiring, formatting helpers and flag validation
package commands

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/quickpet/recall/internal/config"
	"github.com/quickpet/recall/internal/core"
	"github.com/quickpet/recall/internal/storage/sqlite"
)

// openService wires the full memory service from configuration. The caller
// must invoke the returned cleanup function.
func openService() (*core.Service, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	personality, err := config.LoadPersonality(cfg.PersonalityPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading personality: %w", err)
	}

	var store *sqlite.Storage
	if cfg.DBPath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	svc := core.NewService(store, cfg, personality)
	cleanup := func() { store.Close() }
	return svc, cleanup, nil
}

// openStorage opens just the storage layer (for export and cleanup)
func openStorage() (*sqlite.Storage, *config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	var store *sqlite.Storage
	if cfg.DBPath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}
	return store, cfg, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	diff := time.Since(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	} else if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
