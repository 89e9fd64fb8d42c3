// ABOUTME: Tests for turn storage operations
// ABOUTME: Verifies insert, history ordering, search and retention cleanup
package sqlite

import (
	"testing"
	"time"

	"github.com/quickpet/recall/internal/models"
)

func insertTestTurn(t *testing.T, store *TurnStore, sessionID, userInput, aiResponse string, ts time.Time, importance float64) int64 {
	t.Helper()
	turn := &models.ConversationTurn{
		Timestamp:       ts,
		SessionID:       sessionID,
		UserInput:       userInput,
		AIResponse:      aiResponse,
		EmotionDetected: models.EmotionNeutral,
		ImportanceScore: importance,
	}
	id, err := store.Insert(turn)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	return id
}

func TestTurnInsertAssignsIncreasingIDs(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewTurnStore(db)
	now := time.Now().UTC()

	first := insertTestTurn(t, store, "s1", "hello", "hi there", now, 0.5)
	second := insertTestTurn(t, store, "s1", "how are you", "great", now.Add(time.Second), 0.5)

	if second <= first {
		t.Errorf("ids not increasing: first=%d second=%d", first, second)
	}
}

func TestTurnHistoryChronological(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewTurnStore(db)
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		insertTestTurn(t, store, "s1", "message", "reply", base.Add(time.Duration(i)*time.Minute), 0.5)
	}
	insertTestTurn(t, store, "other", "noise", "noise", base, 0.5)

	turns, err := store.History("s1", 3, 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("len(turns) = %d, want 3", len(turns))
	}

	// Most recent 3, oldest first
	for i := 1; i < len(turns); i++ {
		if turns[i].Timestamp.Before(turns[i-1].Timestamp) {
			t.Errorf("turns not in chronological order at index %d", i)
		}
	}

	// Repeated calls with no writes return identical sequences
	again, err := store.History("s1", 3, 0)
	if err != nil {
		t.Fatalf("History() second call error = %v", err)
	}
	for i := range turns {
		if turns[i].ID != again[i].ID {
			t.Errorf("history not stable: index %d id %d vs %d", i, turns[i].ID, again[i].ID)
		}
	}
}

func TestTurnSearchCaseInsensitive(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewTurnStore(db)
	now := time.Now().UTC()

	insertTestTurn(t, store, "s1", "I love Music", "me too", now.Add(-time.Minute), 0.5)
	insertTestTurn(t, store, "s1", "no match here", "nothing", now, 0.5)
	insertTestTurn(t, store, "s1", "what now", "let's play some MUSIC", now.Add(time.Minute), 0.5)

	results, err := store.Search("music", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	// Ranked by recency, most recent first
	if results[0].AIResponse != "let's play some MUSIC" {
		t.Errorf("first result = %q, want most recent match", results[0].AIResponse)
	}
}

func TestTurnCleanupKeepsImportant(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewTurnStore(db)
	old := time.Now().UTC().AddDate(0, 0, -60)
	recent := time.Now().UTC()

	insertTestTurn(t, store, "s1", "old forgettable", "reply", old, 0.4)
	insertTestTurn(t, store, "s1", "old important", "reply", old, 0.9)
	insertTestTurn(t, store, "s1", "recent", "reply", recent, 0.4)

	removed, err := store.CleanupOlderThan(time.Now().UTC().AddDate(0, 0, -30), 0.7)
	if err != nil {
		t.Fatalf("CleanupOlderThan() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	count, err := store.CountBySession("s1")
	if err != nil {
		t.Fatalf("CountBySession() error = %v", err)
	}
	if count != 2 {
		t.Errorf("remaining = %d, want 2", count)
	}
}

func TestTurnRange(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewTurnStore(db)
	base := time.Now().UTC().Add(-time.Hour)

	insertTestTurn(t, store, "s1", "before", "reply", base.Add(-time.Hour), 0.5)
	insertTestTurn(t, store, "s1", "inside", "reply", base.Add(10*time.Minute), 0.5)
	insertTestTurn(t, store, "s2", "also inside", "reply", base.Add(20*time.Minute), 0.5)

	turns, err := store.Range(base, base.Add(30*time.Minute), 100)
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("len(turns) = %d, want 2", len(turns))
	}
	if turns[0].UserInput != "inside" {
		t.Errorf("first in-range turn = %q, want %q", turns[0].UserInput, "inside")
	}
}
