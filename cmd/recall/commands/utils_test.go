// ABOUTME: Tests for shared utility functions used by CLI commands
// ABOUTME: Verifies truncate, formatTime and validation helpers

package commands

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string truncated", "hello world", 8, "hello..."},
		{"very short maxLen", "hello", 2, "he"},
		{"empty string", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", time.Now().Add(-30 * time.Second), "just now"},
		{"minutes", time.Now().Add(-5 * time.Minute), "5m ago"},
		{"hours", time.Now().Add(-3 * time.Hour), "3h ago"},
		{"days", time.Now().Add(-48 * time.Hour), "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTime(tt.t); got != tt.want {
				t.Errorf("formatTime() = %q, want %q", got, tt.want)
			}
		})
	}

	old := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := formatTime(old); got != "2024-03-01" {
		t.Errorf("formatTime(old) = %q, want 2024-03-01", got)
	}
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt(5, "limit"); err != nil {
		t.Errorf("validatePositiveInt(5) error = %v", err)
	}
	if err := validatePositiveInt(0, "limit"); err == nil {
		t.Error("validatePositiveInt(0) should fail")
	}
	if err := validatePositiveInt(-1, "limit"); err == nil {
		t.Error("validatePositiveInt(-1) should fail")
	}
}
