// ABOUTME: Unified Storage layer over the turn, preference and session stores
// ABOUTME: Serializes writes behind a mutex and wraps failures in StorageError
package sqlite

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/quickpet/recall/internal/models"
)

// StorageError wraps an underlying persistence failure (disk full,
// corruption, permissions). Callers may continue without persistence; the
// store itself never retries.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err is (or wraps) a StorageError
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Storage manages all persistent conversation memory data. Writes are
// serialized behind a single lock; reads may proceed concurrently.
type Storage struct {
	db       *DB
	turns    *TurnStore
	prefs    *PreferenceStore
	sessions *SessionStore
	mu       sync.RWMutex
}

// NewStorage initializes storage at the default XDG path
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, wrap("open", err)
	}
	return newStorage(db), nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, wrap("open", err)
	}
	return newStorage(db), nil
}

func newStorage(db *DB) *Storage {
	return &Storage{
		db:       db,
		turns:    NewTurnStore(db),
		prefs:    NewPreferenceStore(db),
		sessions: NewSessionStore(db),
	}
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// Close closes the database connection
func (s *Storage) Close() error {
	return wrap("close", s.db.Close())
}

// --- Turn operations ---

// InsertTurn appends a turn and returns its id
func (s *Storage) InsertTurn(turn *models.ConversationTurn) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.turns.Insert(turn)
	return id, wrap("insert turn", err)
}

// GetHistory returns the most recent turns of a session in chronological
// order (most-recent-last)
func (s *Storage) GetHistory(sessionID string, limit, offset int) ([]models.ConversationTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns, err := s.turns.History(sessionID, limit, offset)
	return turns, wrap("get history", err)
}

// GetTurnsInRange returns turns across sessions within [start, end)
func (s *Storage) GetTurnsInRange(start, end time.Time, limit int) ([]models.ConversationTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns, err := s.turns.Range(start, end, limit)
	return turns, wrap("get range", err)
}

// SearchTurns matches a case-insensitive substring across both text fields,
// most recent first
func (s *Storage) SearchTurns(query string, limit int) ([]models.ConversationTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns, err := s.turns.Search(query, limit)
	return turns, wrap("search turns", err)
}

// CountTurns returns the number of turns stored for a session
func (s *Storage) CountTurns(sessionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count, err := s.turns.CountBySession(sessionID)
	return count, wrap("count turns", err)
}

// --- Preference operations ---

// UpsertPreference stores a preference, incrementing usage_count on conflict
func (s *Storage) UpsertPreference(ptype, key string, value models.Value, confidence float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return wrap("upsert preference", s.prefs.Upsert(ptype, key, value, confidence))
}

// GetPreference retrieves a preference, or nil when absent
func (s *Storage) GetPreference(ptype, key string) (*models.UserPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pref, err := s.prefs.Get(ptype, key)
	return pref, wrap("get preference", err)
}

// TouchPreference increments the usage count of an existing preference
func (s *Storage) TouchPreference(ptype, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return wrap("touch preference", s.prefs.IncrementUsage(ptype, key))
}

// ListPreferences returns preferences, optionally filtered by type
func (s *Storage) ListPreferences(typeFilter string) ([]models.UserPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefs, err := s.prefs.List(typeFilter)
	return prefs, wrap("list preferences", err)
}

// ResetPreferences removes all preference rows (explicit data-reset)
func (s *Storage) ResetPreferences() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.prefs.Reset()
	return n, wrap("reset preferences", err)
}

// --- Session operations ---

// SaveSession upserts the full session context row
func (s *Storage) SaveSession(sc *models.SessionContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return wrap("save session", s.sessions.Save(sc))
}

// LoadSession retrieves a session context, or nil when absent
func (s *Storage) LoadSession(sessionID string) (*models.SessionContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, err := s.sessions.Load(sessionID)
	return sc, wrap("load session", err)
}

// ListActiveSessions returns all sessions still marked active
func (s *Storage) ListActiveSessions() ([]models.SessionContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions, err := s.sessions.ListActive()
	return sessions, wrap("list active sessions", err)
}

// ListSessions returns every stored session
func (s *Storage) ListSessions() ([]models.SessionContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions, err := s.sessions.ListAll()
	return sessions, wrap("list sessions", err)
}

// --- Retention ---

// CleanupOlderThan removes turns older than the given number of days, keeping
// high-importance turns (>= keepImportance). Preference and session rows are
// retained; they are small and cheap.
func (s *Storage) CleanupOlderThan(days int, keepImportance float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	removed, err := s.turns.CleanupOlderThan(cutoff, keepImportance)
	return removed, wrap("cleanup turns", err)
}
