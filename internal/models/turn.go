// ABOUTME: ConversationTurn represents a single user/AI exchange
// ABOUTME: Immutable after insert; the surrogate id is assigned by the store
package models

import "time"

// Emotion labels the external classifier is expected to produce.
const (
	EmotionNeutral   = "neutral"
	EmotionHappy     = "happy"
	EmotionSad       = "sad"
	EmotionExcited   = "excited"
	EmotionConfused  = "confused"
	EmotionAngry     = "angry"
	EmotionSurprised = "surprised"
	EmotionThinking  = "thinking"
)

// ConversationTurn is one user-utterance/AI-response pair.
// Turns are append-only: created once, never updated, removed only by
// retention cleanup.
type ConversationTurn struct {
	ID              int64     `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	SessionID       string    `json:"session_id"`
	UserInput       string    `json:"user_input"`
	AIResponse      string    `json:"ai_response"`
	EmotionDetected string    `json:"emotion_detected"`
	ContextSummary  string    `json:"context_summary,omitempty"`
	ImportanceScore float64   `json:"importance_score"`
}

// NewTurn creates a turn stamped with the current UTC time. The emotion
// label defaults to neutral when empty.
func NewTurn(sessionID, userInput, aiResponse, emotion string) *ConversationTurn {
	if emotion == "" {
		emotion = EmotionNeutral
	}
	return &ConversationTurn{
		Timestamp:       time.Now().UTC(),
		SessionID:       sessionID,
		UserInput:       userInput,
		AIResponse:      aiResponse,
		EmotionDetected: emotion,
		ImportanceScore: 0.5,
	}
}

// Clamp01 clamps a score to the [0,1] range used by importance and
// confidence values throughout the system.
func Clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
