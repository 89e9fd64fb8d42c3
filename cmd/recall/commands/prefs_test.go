// ABOUTME: Tests for preference CLI helpers
// ABOUTME: Verifies typed value parsing from command arguments

package commands

import (
	"testing"

	"github.com/quickpet/recall/internal/models"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		kind  models.ValueKind
	}{
		{"true", models.KindBool},
		{"false", models.KindBool},
		{"42", models.KindNumber},
		{"0.75", models.KindNumber},
		{"Alice", models.KindText},
		{"TRUE", models.KindText},
	}

	for _, tt := range tests {
		v := parseValue(tt.input)
		if v.Kind != tt.kind {
			t.Errorf("parseValue(%q).Kind = %v, want %v", tt.input, v.Kind, tt.kind)
		}
	}
}

func TestParseValueRoundTrip(t *testing.T) {
	if got := parseValue("Alice").String(); got != "Alice" {
		t.Errorf("String() = %q, want Alice", got)
	}
	if got := parseValue("true").String(); got != "true" {
		t.Errorf("String() = %q, want true", got)
	}
}
