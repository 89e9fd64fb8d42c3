// ABOUTME: Tests for the conversation turn model
// ABOUTME: Verifies constructor defaults and session id generation
package models

import (
	"strings"
	"testing"
)

func TestNewTurnDefaults(t *testing.T) {
	turn := NewTurn("s1", "hello", "hi there", "")

	if turn.EmotionDetected != EmotionNeutral {
		t.Errorf("EmotionDetected = %q, want neutral", turn.EmotionDetected)
	}
	if turn.ImportanceScore != 0.5 {
		t.Errorf("ImportanceScore = %v, want 0.5", turn.ImportanceScore)
	}
	if turn.ID != 0 {
		t.Errorf("ID = %d, want 0 before insert", turn.ID)
	}
	if turn.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestNewTurnKeepsEmotion(t *testing.T) {
	turn := NewTurn("s1", "yay", "nice", EmotionExcited)
	if turn.EmotionDetected != EmotionExcited {
		t.Errorf("EmotionDetected = %q, want excited", turn.EmotionDetected)
	}
}

func TestGenerateSessionID(t *testing.T) {
	id := GenerateSessionID()
	if !strings.HasPrefix(id, "session_") {
		t.Errorf("id %q should start with session_", id)
	}
	if parts := strings.Split(id, "_"); len(parts) != 3 || len(parts[2]) != 8 {
		t.Errorf("id %q should look like session_<epoch>_<8 hex chars>", id)
	}

	if GenerateSessionID() == id {
		t.Error("consecutive ids should differ")
	}
}
