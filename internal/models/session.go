// ABOUTME: SessionContext holds the rolling state for one interaction session
// ABOUTME: Created active, mutated per turn, marked ended exactly once
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionContext is the live state of one wake-to-sleep interaction period.
// Lifecycle: created -> active -> ended. Only active sessions accept turns;
// ending is idempotent.
type SessionContext struct {
	SessionID           string    `json:"session_id"`
	StartTime           time.Time `json:"start_time"`
	LastActivity        time.Time `json:"last_activity"`
	TopicKeywords       []string  `json:"topic_keywords"`
	EmotionalTrend      []string  `json:"emotional_trend"`
	UserMood            string    `json:"user_mood"`
	ConversationSummary string    `json:"conversation_summary"`
	Active              bool      `json:"active"`
}

// NewSessionContext creates an active session starting now. An empty mood
// prior defaults to neutral.
func NewSessionContext(sessionID, moodPrior string) *SessionContext {
	if moodPrior == "" {
		moodPrior = EmotionNeutral
	}
	now := time.Now().UTC()
	return &SessionContext{
		SessionID:      sessionID,
		StartTime:      now,
		LastActivity:   now,
		TopicKeywords:  []string{},
		EmotionalTrend: []string{},
		UserMood:       moodPrior,
		Active:         true,
	}
}

// GenerateSessionID produces a session_<epoch>_<random> identifier.
func GenerateSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().Unix(), uuid.New().String()[:8])
}

// End marks the session inactive. Safe to call more than once; the second
// call reports false and changes nothing.
func (sc *SessionContext) End() bool {
	if !sc.Active {
		return false
	}
	sc.Active = false
	sc.LastActivity = time.Now().UTC()
	return true
}
