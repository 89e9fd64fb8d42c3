// ABOUTME: Tests for the unified storage facade
// ABOUTME: Verifies error wrapping, concurrent access and retention cleanup
package sqlite

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/quickpet/recall/internal/models"
)

func TestStorageErrorWrapping(t *testing.T) {
	inner := errors.New("disk full")
	err := wrap("insert turn", inner)

	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatal("wrap() did not produce a StorageError")
	}
	if !errors.Is(err, inner) {
		t.Error("StorageError should unwrap to the inner error")
	}
	if !IsStorageError(err) {
		t.Error("IsStorageError() = false, want true")
	}
	if wrap("noop", nil) != nil {
		t.Error("wrap(nil) should be nil")
	}
}

func TestStorageFacadeRoundTrip(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	sc := models.NewSessionContext("s1", "")
	if err := store.SaveSession(sc); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	turn := models.NewTurn("s1", "hello", "hi", models.EmotionHappy)
	id, err := store.InsertTurn(turn)
	if err != nil {
		t.Fatalf("InsertTurn() error = %v", err)
	}
	if id == 0 || turn.ID != id {
		t.Errorf("id = %d, turn.ID = %d", id, turn.ID)
	}

	history, err := store.GetHistory("s1", 50, 0)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(history) != 1 || history[0].UserInput != "hello" {
		t.Errorf("history = %+v", history)
	}
}

func TestStorageConcurrentWrites(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	_ = store.SaveSession(models.NewSessionContext("s1", ""))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			turn := models.NewTurn("s1", "concurrent", "write", "")
			if _, err := store.InsertTurn(turn); err != nil {
				t.Errorf("InsertTurn() error = %v", err)
			}
		}()
	}
	wg.Wait()

	count, err := store.CountTurns("s1")
	if err != nil {
		t.Fatalf("CountTurns() error = %v", err)
	}
	if count != 10 {
		t.Errorf("count = %d, want 10", count)
	}
}

func TestStorageCleanupOlderThan(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	old := models.NewTurn("s1", "ancient history", "yes", "")
	old.Timestamp = time.Now().UTC().AddDate(0, 0, -45)
	if _, err := store.InsertTurn(old); err != nil {
		t.Fatalf("InsertTurn() error = %v", err)
	}

	fresh := models.NewTurn("s1", "today", "yes", "")
	if _, err := store.InsertTurn(fresh); err != nil {
		t.Fatalf("InsertTurn() error = %v", err)
	}

	removed, err := store.CleanupOlderThan(30, 0.7)
	if err != nil {
		t.Fatalf("CleanupOlderThan() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
}
