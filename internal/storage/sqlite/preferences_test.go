// ABOUTME: Tests for preference storage operations
// ABOUTME: Verifies upsert semantics, usage counting and type namespacing
package sqlite

import (
	"testing"

	"github.com/quickpet/recall/internal/models"
)

func TestPreferenceUpsert(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewPreferenceStore(db)

	if err := store.Upsert("user_info", "name", models.TextValue("Alice"), 0.9); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := store.Upsert("user_info", "name", models.TextValue("Bob"), 0.9); err != nil {
		t.Fatalf("Upsert() second error = %v", err)
	}

	pref, err := store.Get("user_info", "name")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if pref == nil {
		t.Fatal("Get() returned nil")
	}
	if pref.Value.Text != "Bob" {
		t.Errorf("Value = %q, want Bob", pref.Value.Text)
	}
	if pref.UsageCount != 2 {
		t.Errorf("UsageCount = %d, want 2", pref.UsageCount)
	}

	// Exactly one row for the key
	all, err := store.List("user_info")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("len(prefs) = %d, want 1", len(all))
	}
}

func TestPreferenceTypeNamespacing(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewPreferenceStore(db)

	if err := store.Upsert("user_info", "name", models.TextValue("Alice"), 1.0); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := store.Upsert("behavior", "name", models.TextValue("speedy"), 1.0); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	userInfo, err := store.Get("user_info", "name")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	behavior, err := store.Get("behavior", "name")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if userInfo.Value.Text != "Alice" || behavior.Value.Text != "speedy" {
		t.Errorf("type namespaces collided: %q / %q", userInfo.Value.Text, behavior.Value.Text)
	}
}

func TestPreferenceConfidenceClamped(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewPreferenceStore(db)

	if err := store.Upsert("behavior", "speed_preference", models.TextValue("fast"), 1.7); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	pref, err := store.Get("behavior", "speed_preference")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if pref.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want clamped to 1.0", pref.Confidence)
	}
}

func TestPreferenceGetAbsent(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewPreferenceStore(db)

	pref, err := store.Get("user_info", "missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if pref != nil {
		t.Errorf("Get() = %+v, want nil for absent key", pref)
	}
}

func TestPreferenceIncrementUsage(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewPreferenceStore(db)

	if err := store.Upsert("personality", "interest.jazz", models.BoolValue(true), 0.6); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := store.IncrementUsage("personality", "interest.jazz"); err != nil {
		t.Fatalf("IncrementUsage() error = %v", err)
	}

	pref, err := store.Get("personality", "interest.jazz")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if pref.UsageCount != 2 {
		t.Errorf("UsageCount = %d, want 2", pref.UsageCount)
	}
	if pref.Value.Kind != models.KindBool || !pref.Value.Bool {
		t.Errorf("Value = %+v, want bool true", pref.Value)
	}
}

func TestPreferenceReset(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewPreferenceStore(db)

	_ = store.Upsert("user_info", "name", models.TextValue("Alice"), 1.0)
	_ = store.Upsert("behavior", "speed_preference", models.TextValue("fast"), 0.7)

	removed, err := store.Reset()
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	all, err := store.List("")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("len(prefs) = %d, want 0 after reset", len(all))
	}
}
