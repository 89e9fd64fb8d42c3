// ABOUTME: Centralized configuration for the conversation memory service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the memory system
type Config struct {
	// Storage settings
	DBPath          string
	PersonalityPath string

	// Memory settings
	HistoryLimit   int
	SearchLimit    int
	KeywordCap     int
	TrendCap       int
	MoodWindow     int
	RetentionDays  int
	KeepImportance float64

	// OpenAI settings (optional rich summarizer and extractor only; the
	// core never touches the network)
	OpenAIKey    string
	ChatModel    string
	Timeout      time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	LLMExtractor bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:          os.Getenv("RECALL_DB"),
		PersonalityPath: os.Getenv("RECALL_PERSONALITY"),
		HistoryLimit:    getEnvInt("RECALL_HISTORY_LIMIT", 50),
		SearchLimit:     getEnvInt("RECALL_SEARCH_LIMIT", 20),
		KeywordCap:      getEnvInt("RECALL_KEYWORD_CAP", 50),
		TrendCap:        getEnvInt("RECALL_TREND_CAP", 100),
		MoodWindow:      getEnvInt("RECALL_MOOD_WINDOW", 10),
		RetentionDays:   getEnvInt("RECALL_RETENTION_DAYS", 30),
		KeepImportance:  getEnvFloat("RECALL_KEEP_IMPORTANCE", 0.7),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("RECALL_OPENAI_MODEL", "gpt-4o-mini"),
		Timeout:         getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		LLMExtractor:    getEnvBool("RECALL_LLM_EXTRACTOR", false),
	}

	return cfg, cfg.Validate()
}

// Validate checks configured values against their allowed ranges
func (c *Config) Validate() error {
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("RECALL_HISTORY_LIMIT must be positive, got %d", c.HistoryLimit)
	}
	if c.KeywordCap <= 0 || c.TrendCap <= 0 || c.MoodWindow <= 0 {
		return fmt.Errorf("keyword cap, trend cap and mood window must be positive")
	}
	if c.MoodWindow > c.TrendCap {
		return fmt.Errorf("RECALL_MOOD_WINDOW (%d) cannot exceed RECALL_TREND_CAP (%d)", c.MoodWindow, c.TrendCap)
	}
	if c.KeepImportance < 0 || c.KeepImportance > 1 {
		return fmt.Errorf("RECALL_KEEP_IMPORTANCE must be 0-1, got %f", c.KeepImportance)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
