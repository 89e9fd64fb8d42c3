// ABOUTME: Tests for environment configuration and personality loading
// ABOUTME: Verifies defaults, overrides, validation and missing-file handling
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HistoryLimit != 50 {
		t.Errorf("HistoryLimit = %d, want 50", cfg.HistoryLimit)
	}
	if cfg.SearchLimit != 20 {
		t.Errorf("SearchLimit = %d, want 20", cfg.SearchLimit)
	}
	if cfg.KeywordCap != 50 || cfg.TrendCap != 100 || cfg.MoodWindow != 10 {
		t.Errorf("caps = %d/%d/%d, want 50/100/10", cfg.KeywordCap, cfg.TrendCap, cfg.MoodWindow)
	}
	if cfg.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want 30", cfg.RetentionDays)
	}
	if cfg.LLMExtractor {
		t.Error("LLMExtractor should default to off")
	}
}

func TestLoadLLMExtractorFlag(t *testing.T) {
	t.Setenv("RECALL_LLM_EXTRACTOR", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.LLMExtractor {
		t.Error("LLMExtractor = false, want true")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RECALL_HISTORY_LIMIT", "10")
	t.Setenv("RECALL_TREND_CAP", "40")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HistoryLimit != 10 {
		t.Errorf("HistoryLimit = %d, want 10", cfg.HistoryLimit)
	}
	if cfg.TrendCap != 40 {
		t.Errorf("TrendCap = %d, want 40", cfg.TrendCap)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("RECALL_MOOD_WINDOW", "500")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject mood window larger than trend cap")
	}
}

func TestLoadPersonalityMissingFile(t *testing.T) {
	pc, err := LoadPersonality(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadPersonality() error = %v", err)
	}
	if pc.MoodPrior() != "neutral" {
		t.Errorf("MoodPrior() = %q, want neutral", pc.MoodPrior())
	}
}

func TestLoadPersonalityFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personality.json")
	doc := `{"personality": {"name": "Buddy", "default_mood": "happy", "playfulness": 0.9}}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	pc, err := LoadPersonality(path)
	if err != nil {
		t.Fatalf("LoadPersonality() error = %v", err)
	}
	if pc.Personality.Name != "Buddy" {
		t.Errorf("Name = %q, want Buddy", pc.Personality.Name)
	}
	if pc.MoodPrior() != "happy" {
		t.Errorf("MoodPrior() = %q, want happy", pc.MoodPrior())
	}
}

func TestLoadPersonalityMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personality.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := LoadPersonality(path); err == nil {
		t.Error("LoadPersonality() should fail on malformed JSON")
	}
}
