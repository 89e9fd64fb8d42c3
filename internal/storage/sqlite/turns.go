// ABOUTME: Turn storage operations for SQLite
// ABOUTME: Append-only inserts plus history, range, search and cleanup queries
package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/quickpet/recall/internal/models"
)

// TurnStore handles conversation turn persistence
type TurnStore struct {
	db *DB
}

// NewTurnStore creates a new TurnStore
func NewTurnStore(db *DB) *TurnStore {
	return &TurnStore{db: db}
}

// Insert appends a turn and returns its assigned id. Duplicate content is
// allowed; only I/O failures error.
func (s *TurnStore) Insert(turn *models.ConversationTurn) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO conversations
			(timestamp, session_id, user_input, ai_response, emotion_detected, context_summary, importance_score)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, turn.Timestamp, turn.SessionID, turn.UserInput, turn.AIResponse,
		turn.EmotionDetected, turn.ContextSummary, turn.ImportanceScore)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	turn.ID = id
	return id, nil
}

// History returns the most recent turns for a session, oldest first.
// The limit bounds how many of the newest turns are returned; offset skips
// past the newest ones.
func (s *TurnStore) History(sessionID string, limit, offset int) ([]models.ConversationTurn, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, session_id, user_input, ai_response, emotion_detected, context_summary, importance_score
		FROM conversations
		WHERE session_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	turns, err := scanTurns(rows)
	if err != nil {
		return nil, err
	}
	reverseTurns(turns)
	return turns, nil
}

// Range returns turns across all sessions within [start, end), oldest first.
func (s *TurnStore) Range(start, end time.Time, limit int) ([]models.ConversationTurn, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, session_id, user_input, ai_response, emotion_detected, context_summary, importance_score
		FROM conversations
		WHERE timestamp >= ? AND timestamp < ?
		ORDER BY timestamp ASC, id ASC
		LIMIT ?
	`, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanTurns(rows)
}

// Search performs a case-insensitive substring match across user input and
// AI response, most recent matches first.
func (s *TurnStore) Search(query string, limit int) ([]models.ConversationTurn, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := s.db.Query(`
		SELECT id, timestamp, session_id, user_input, ai_response, emotion_detected, context_summary, importance_score
		FROM conversations
		WHERE lower(user_input) LIKE ? OR lower(ai_response) LIKE ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanTurns(rows)
}

// CountBySession returns the number of stored turns for a session
func (s *TurnStore) CountBySession(sessionID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM conversations WHERE session_id = ?
	`, sessionID).Scan(&count)
	return count, err
}

// CleanupOlderThan deletes turns older than the cutoff, keeping turns whose
// importance is at or above keepImportance. Returns the number removed.
func (s *TurnStore) CleanupOlderThan(cutoff time.Time, keepImportance float64) (int64, error) {
	result, err := s.db.Exec(`
		DELETE FROM conversations
		WHERE timestamp < ? AND importance_score < ?
	`, cutoff, keepImportance)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// scanTurns scans rows into a slice of ConversationTurn
func scanTurns(rows *sql.Rows) ([]models.ConversationTurn, error) {
	var turns []models.ConversationTurn
	for rows.Next() {
		var turn models.ConversationTurn
		err := rows.Scan(&turn.ID, &turn.Timestamp, &turn.SessionID, &turn.UserInput,
			&turn.AIResponse, &turn.EmotionDetected, &turn.ContextSummary, &turn.ImportanceScore)
		if err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}

func reverseTurns(turns []models.ConversationTurn) {
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
}
