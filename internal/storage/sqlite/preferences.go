// ABOUTME: Preference storage operations for SQLite
// ABOUTME: Upsert semantics keyed by (preference_type, key) with usage counting
package sqlite

import (
	"database/sql"
	"time"

	"github.com/quickpet/recall/internal/models"
)

// PreferenceStore handles user preference persistence
type PreferenceStore struct {
	db *DB
}

// NewPreferenceStore creates a new PreferenceStore
func NewPreferenceStore(db *DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// Upsert stores a preference. An existing (type, key) row gets its value,
// confidence and last_updated overwritten and usage_count incremented; a new
// row starts at usage_count 1.
func (s *PreferenceStore) Upsert(ptype, key string, value models.Value, confidence float64) error {
	_, err := s.db.Exec(`
		INSERT INTO user_preferences (preference_type, key, value, confidence, last_updated, usage_count)
		VALUES (?, ?, ?, ?, ?, 1)
		ON CONFLICT(preference_type, key) DO UPDATE SET
			value = excluded.value,
			confidence = excluded.confidence,
			last_updated = excluded.last_updated,
			usage_count = usage_count + 1
	`, ptype, key, value.Encode(), models.Clamp01(confidence), time.Now().UTC())
	return err
}

// Get retrieves a preference, or nil when absent
func (s *PreferenceStore) Get(ptype, key string) (*models.UserPreference, error) {
	var (
		pref models.UserPreference
		raw  string
	)
	err := s.db.QueryRow(`
		SELECT preference_type, key, value, confidence, last_updated, usage_count
		FROM user_preferences
		WHERE preference_type = ? AND key = ?
	`, ptype, key).Scan(&pref.Type, &pref.Key, &raw, &pref.Confidence, &pref.LastUpdated, &pref.UsageCount)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	pref.Value = models.DecodeValue(raw)
	return &pref, nil
}

// IncrementUsage bumps usage_count for an existing preference. Missing rows
// are ignored.
func (s *PreferenceStore) IncrementUsage(ptype, key string) error {
	_, err := s.db.Exec(`
		UPDATE user_preferences
		SET usage_count = usage_count + 1
		WHERE preference_type = ? AND key = ?
	`, ptype, key)
	return err
}

// List returns preferences, optionally filtered by type. An empty filter
// returns everything.
func (s *PreferenceStore) List(typeFilter string) ([]models.UserPreference, error) {
	query := `
		SELECT preference_type, key, value, confidence, last_updated, usage_count
		FROM user_preferences
	`
	var args []interface{}
	if typeFilter != "" {
		query += " WHERE preference_type = ?"
		args = append(args, typeFilter)
	}
	query += " ORDER BY preference_type ASC, key ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var prefs []models.UserPreference
	for rows.Next() {
		var (
			pref models.UserPreference
			raw  string
		)
		err := rows.Scan(&pref.Type, &pref.Key, &raw, &pref.Confidence, &pref.LastUpdated, &pref.UsageCount)
		if err != nil {
			return nil, err
		}
		pref.Value = models.DecodeValue(raw)
		prefs = append(prefs, pref)
	}
	return prefs, rows.Err()
}

// Reset deletes all preferences. Explicit data-reset only; normal operation
// never removes preference rows.
func (s *PreferenceStore) Reset() (int64, error) {
	result, err := s.db.Exec("DELETE FROM user_preferences")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
