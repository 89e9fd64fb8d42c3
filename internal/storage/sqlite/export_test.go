// ABOUTME: Tests for YAML and Markdown export
// ABOUTME: Verifies snapshot contents against seeded data
package sqlite

import (
	"strings"
	"testing"

	"github.com/quickpet/recall/internal/models"
)

func seedExportData(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.UpsertPreference(models.PrefUserInfo, "name", models.TextValue("Alice"), 0.9); err != nil {
		t.Fatalf("UpsertPreference() error = %v", err)
	}

	sc := models.NewSessionContext("session_export", "")
	sc.TopicKeywords = []string{"dinosaurs"}
	if err := store.SaveSession(sc); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}
	turn := models.NewTurn("session_export", "tell me about dinosaurs", "they were big!", models.EmotionExcited)
	if _, err := store.InsertTurn(turn); err != nil {
		t.Fatalf("InsertTurn() error = %v", err)
	}
	return store
}

func TestExportToYAML(t *testing.T) {
	store := seedExportData(t)

	var sb strings.Builder
	if err := store.ExportToYAML(&sb); err != nil {
		t.Fatalf("ExportToYAML() error = %v", err)
	}

	out := sb.String()
	for _, want := range []string{
		"version: \"1.0\"",
		"tool: recall",
		"key: name",
		"value: Alice",
		"session_id: session_export",
		"user_input: tell me about dinosaurs",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML export missing %q:\n%s", want, out)
		}
	}
}

func TestExportToMarkdown(t *testing.T) {
	store := seedExportData(t)

	var sb strings.Builder
	if err := store.ExportToMarkdown(&sb); err != nil {
		t.Fatalf("ExportToMarkdown() error = %v", err)
	}

	out := sb.String()
	for _, want := range []string{
		"# Memory Export",
		"## Preferences",
		"| user_info | name | Alice |",
		"### session_export (active)",
		"**User:** tell me about dinosaurs",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown export missing %q:\n%s", want, out)
		}
	}
}
