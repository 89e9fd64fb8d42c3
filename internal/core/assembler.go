// ABOUTME: Context assembler producing the prompt-ready bundle for the LLM
// ABOUTME: Filters preferences by usage/confidence floors; read-only over stores
package core

import (
	"fmt"
	"strings"

	"github.com/quickpet/recall/internal/models"
)

// ContextBundle is the assembled memory context handed to the voice loop
// before each LLM call. Assembly never mutates stored state.
type ContextBundle struct {
	SessionID     string                    `json:"session_id"`
	UserMood      string                    `json:"user_mood"`
	TopicKeywords []string                  `json:"topic_keywords"`
	Summary       string                    `json:"summary"`
	Preferences   []models.UserPreference   `json:"preferences"`
	RecentTurns   []models.ConversationTurn `json:"recent_turns"`
}

// AssembleContext builds a bundle from the live session context, recent
// history and the preference set. Only preferences that have proven useful
// (referenced more than once) or were stated with conviction (confidence
// above 0.5) make the cut.
func AssembleContext(sc *models.SessionContext, history []models.ConversationTurn, prefs []models.UserPreference) *ContextBundle {
	bundle := &ContextBundle{
		SessionID:     sc.SessionID,
		UserMood:      sc.UserMood,
		TopicKeywords: sc.TopicKeywords,
		Summary:       sc.ConversationSummary,
		RecentTurns:   history,
	}
	for _, p := range prefs {
		if p.UsageCount > 1 || p.Confidence > 0.5 {
			bundle.Preferences = append(bundle.Preferences, p)
		}
	}
	return bundle
}

// Prompt renders the bundle as plain text sections for injection into the
// system prompt. Empty sections are omitted.
func (b *ContextBundle) Prompt() string {
	var sb strings.Builder

	if len(b.Preferences) > 0 {
		sb.WriteString("What I know about the user:\n")
		for _, p := range b.Preferences {
			fmt.Fprintf(&sb, "- %s/%s: %s\n", p.Type, p.Key, p.Value.String())
		}
	}

	if b.UserMood != "" && b.UserMood != models.EmotionNeutral {
		fmt.Fprintf(&sb, "Current mood: %s\n", b.UserMood)
	}

	if len(b.TopicKeywords) > 0 {
		n := len(b.TopicKeywords)
		if n > 10 {
			n = 10
		}
		fmt.Fprintf(&sb, "Topics discussed: %s\n", strings.Join(b.TopicKeywords[:n], ", "))
	}

	if b.Summary != "" {
		fmt.Fprintf(&sb, "Session so far: %s\n", b.Summary)
	}

	if len(b.RecentTurns) > 0 {
		sb.WriteString("Recent conversation:\n")
		for _, t := range b.RecentTurns {
			fmt.Fprintf(&sb, "User: %s\nAssistant: %s\n", t.UserInput, t.AIResponse)
		}
	}

	return sb.String()
}
