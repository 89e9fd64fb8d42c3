// ABOUTME: Session context storage operations for SQLite
// ABOUTME: Full-row upserts keyed by session_id; keyword/trend lists stored as JSON
package sqlite

import (
	"database/sql"
	"encoding/json"

	"github.com/quickpet/recall/internal/models"
)

// SessionStore handles session context persistence
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Save upserts the full session row
func (s *SessionStore) Save(sc *models.SessionContext) error {
	keywordsJSON, err := json.Marshal(sc.TopicKeywords)
	if err != nil {
		return err
	}
	trendJSON, err := json.Marshal(sc.EmotionalTrend)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO session_contexts
			(session_id, start_time, last_activity, topic_keywords, emotional_trend, user_mood, conversation_summary, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			start_time = excluded.start_time,
			last_activity = excluded.last_activity,
			topic_keywords = excluded.topic_keywords,
			emotional_trend = excluded.emotional_trend,
			user_mood = excluded.user_mood,
			conversation_summary = excluded.conversation_summary,
			active = excluded.active
	`, sc.SessionID, sc.StartTime, sc.LastActivity, string(keywordsJSON),
		string(trendJSON), sc.UserMood, sc.ConversationSummary, boolToInt(sc.Active))

	return err
}

// Load retrieves a session context, or nil when absent
func (s *SessionStore) Load(sessionID string) (*models.SessionContext, error) {
	row := s.db.QueryRow(`
		SELECT session_id, start_time, last_activity, topic_keywords, emotional_trend, user_mood, conversation_summary, active
		FROM session_contexts
		WHERE session_id = ?
	`, sessionID)

	sc, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// ListActive returns all sessions still marked active, oldest first
func (s *SessionStore) ListActive() ([]models.SessionContext, error) {
	rows, err := s.db.Query(`
		SELECT session_id, start_time, last_activity, topic_keywords, emotional_trend, user_mood, conversation_summary, active
		FROM session_contexts
		WHERE active = 1
		ORDER BY start_time ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var sessions []models.SessionContext
	for rows.Next() {
		sc, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sc)
	}
	return sessions, rows.Err()
}

// ListAll returns every session row, oldest first
func (s *SessionStore) ListAll() ([]models.SessionContext, error) {
	rows, err := s.db.Query(`
		SELECT session_id, start_time, last_activity, topic_keywords, emotional_trend, user_mood, conversation_summary, active
		FROM session_contexts
		ORDER BY start_time ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var sessions []models.SessionContext
	for rows.Next() {
		sc, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sc)
	}
	return sessions, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanSession
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row scanner) (*models.SessionContext, error) {
	var (
		sc           models.SessionContext
		keywordsJSON string
		trendJSON    string
		active       int
	)
	err := row.Scan(&sc.SessionID, &sc.StartTime, &sc.LastActivity, &keywordsJSON,
		&trendJSON, &sc.UserMood, &sc.ConversationSummary, &active)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(keywordsJSON), &sc.TopicKeywords); err != nil {
		sc.TopicKeywords = []string{}
	}
	if err := json.Unmarshal([]byte(trendJSON), &sc.EmotionalTrend); err != nil {
		sc.EmotionalTrend = []string{}
	}
	sc.Active = active != 0

	return &sc, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
