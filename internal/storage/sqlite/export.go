// ABOUTME: Export functionality for user-facing data dumps
// ABOUTME: Supports YAML and Markdown export formats
package sqlite

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ExportData represents the complete exportable data structure
type ExportData struct {
	Version     string             `yaml:"version" json:"version"`
	ExportedAt  string             `yaml:"exported_at" json:"exported_at"`
	Tool        string             `yaml:"tool" json:"tool"`
	Preferences []ExportPreference `yaml:"preferences,omitempty" json:"preferences,omitempty"`
	Sessions    []ExportSession    `yaml:"sessions,omitempty" json:"sessions,omitempty"`
}

// ExportPreference represents a user preference for export
type ExportPreference struct {
	Type        string  `yaml:"preference_type" json:"preference_type"`
	Key         string  `yaml:"key" json:"key"`
	Value       string  `yaml:"value" json:"value"`
	Confidence  float64 `yaml:"confidence" json:"confidence"`
	UsageCount  int     `yaml:"usage_count" json:"usage_count"`
	LastUpdated string  `yaml:"last_updated" json:"last_updated"`
}

// ExportSession represents a session summary for export
type ExportSession struct {
	SessionID string       `yaml:"session_id" json:"session_id"`
	StartTime string       `yaml:"start_time" json:"start_time"`
	LastSeen  string       `yaml:"last_activity" json:"last_activity"`
	Mood      string       `yaml:"user_mood" json:"user_mood"`
	Keywords  []string     `yaml:"topic_keywords,omitempty" json:"topic_keywords,omitempty"`
	Summary   string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Active    bool         `yaml:"active" json:"active"`
	Turns     []ExportTurn `yaml:"turns,omitempty" json:"turns,omitempty"`
}

// ExportTurn represents a conversation turn for export
type ExportTurn struct {
	Timestamp  string  `yaml:"timestamp" json:"timestamp"`
	UserInput  string  `yaml:"user_input" json:"user_input"`
	AIResponse string  `yaml:"ai_response" json:"ai_response"`
	Emotion    string  `yaml:"emotion" json:"emotion"`
	Importance float64 `yaml:"importance" json:"importance"`
}

// Export builds the complete export snapshot: all preferences plus every
// session with its turns.
func (s *Storage) Export() (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Tool:       "recall",
	}

	prefs, err := s.ListPreferences("")
	if err != nil {
		return nil, err
	}
	for _, pref := range prefs {
		data.Preferences = append(data.Preferences, ExportPreference{
			Type:        pref.Type,
			Key:         pref.Key,
			Value:       pref.Value.String(),
			Confidence:  pref.Confidence,
			UsageCount:  pref.UsageCount,
			LastUpdated: pref.LastUpdated.Format(time.RFC3339),
		})
	}

	sessions, err := s.ListSessions()
	if err != nil {
		return nil, err
	}
	for _, sc := range sessions {
		exportSession := ExportSession{
			SessionID: sc.SessionID,
			StartTime: sc.StartTime.Format(time.RFC3339),
			LastSeen:  sc.LastActivity.Format(time.RFC3339),
			Mood:      sc.UserMood,
			Keywords:  sc.TopicKeywords,
			Summary:   sc.ConversationSummary,
			Active:    sc.Active,
		}

		turns, err := s.GetHistory(sc.SessionID, 1000, 0)
		if err != nil {
			continue
		}
		for _, turn := range turns {
			exportSession.Turns = append(exportSession.Turns, ExportTurn{
				Timestamp:  turn.Timestamp.Format(time.RFC3339),
				UserInput:  turn.UserInput,
				AIResponse: turn.AIResponse,
				Emotion:    turn.EmotionDetected,
				Importance: turn.ImportanceScore,
			})
		}

		data.Sessions = append(data.Sessions, exportSession)
	}

	return data, nil
}

// ExportToYAML writes the export snapshot as YAML
func (s *Storage) ExportToYAML(w io.Writer) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return encoder.Close()
}

// ExportToMarkdown writes the export snapshot as human-readable Markdown
func (s *Storage) ExportToMarkdown(w io.Writer) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "# Memory Export - %s\n\n", time.Now().Format("2006-01-02"))
	_, _ = fmt.Fprintf(w, "Generated: %s\n\n", data.ExportedAt)

	if len(data.Preferences) > 0 {
		_, _ = fmt.Fprintln(w, "## Preferences")
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "| Type | Key | Value | Confidence | Uses |")
		_, _ = fmt.Fprintln(w, "|------|-----|-------|------------|------|")
		for _, pref := range data.Preferences {
			_, _ = fmt.Fprintf(w, "| %s | %s | %s | %.2f | %d |\n",
				pref.Type, pref.Key, pref.Value, pref.Confidence, pref.UsageCount)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(data.Sessions) > 0 {
		_, _ = fmt.Fprintln(w, "## Sessions")
		_, _ = fmt.Fprintln(w)
		for _, sc := range data.Sessions {
			status := "ended"
			if sc.Active {
				status = "active"
			}
			_, _ = fmt.Fprintf(w, "### %s (%s)\n\n", sc.SessionID, status)
			if len(sc.Keywords) > 0 {
				_, _ = fmt.Fprintf(w, "*Topics: %s*\n\n", strings.Join(sc.Keywords, ", "))
			}
			if sc.Summary != "" {
				_, _ = fmt.Fprintf(w, "%s\n\n", sc.Summary)
			}
			for _, turn := range sc.Turns {
				_, _ = fmt.Fprintf(w, "**User:** %s\n\n", turn.UserInput)
				if turn.AIResponse != "" {
					_, _ = fmt.Fprintf(w, "**AI:** %s\n\n", turn.AIResponse)
				}
			}
			_, _ = fmt.Fprintln(w, "---")
			_, _ = fmt.Fprintln(w)
		}
	}

	return nil
}
