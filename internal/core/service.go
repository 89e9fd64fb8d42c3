// ABOUTME: ConversationMemoryService facade tying storage, tracker and extractor together
// ABOUTME: Single entry point for the voice loop; degrades to memory-only on storage loss
package core

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/quickpet/recall/internal/config"
	"github.com/quickpet/recall/internal/models"
	"github.com/quickpet/recall/internal/storage/sqlite"
)

// Summarizer produces a session summary richer than the built-in heuristic
// one. Optional; when unset or failing, the heuristic summary is used.
type Summarizer interface {
	SummarizeSession(sc *models.SessionContext, turns []models.ConversationTurn) (string, error)
}

// Service is the conversation memory facade. All voice-loop interactions go
// through it; the underlying stores are not exposed.
type Service struct {
	store      *sqlite.Storage
	tracker    *Tracker
	extractor  PreferenceExtractor
	classifier EmotionClassifier
	summarizer Summarizer
	cfg        *config.Config
	started    time.Time
	degraded   bool
}

// NewService wires the facade from its parts. personality may be nil.
func NewService(store *sqlite.Storage, cfg *config.Config, personality *config.PersonalityConfig) *Service {
	return &Service{
		store:      store,
		tracker:    NewTracker(cfg.KeywordCap, cfg.TrendCap, cfg.MoodWindow, personality.MoodPrior()),
		extractor:  NewHeuristicExtractor(),
		classifier: NewKeywordClassifier(),
		cfg:        cfg,
		started:    time.Now().UTC(),
	}
}

// SetSummarizer installs an optional rich summarizer (used by EndSession)
func (s *Service) SetSummarizer(sum Summarizer) {
	s.summarizer = sum
}

// SetExtractor replaces the default heuristic preference extractor
func (s *Service) SetExtractor(ex PreferenceExtractor) {
	if ex != nil {
		s.extractor = ex
	}
}

// Degraded reports whether persistence has been lost and the service is
// running memory-only.
func (s *Service) Degraded() bool {
	return s.degraded
}

// enterDegraded flags persistence loss exactly once
func (s *Service) enterDegraded(err error) {
	if !s.degraded {
		s.degraded = true
		log.Printf("[Memory] persistence lost, continuing in memory-only mode: %v", err)
	}
}

// --- Session lifecycle ---

// StartNewSession creates and persists a new active session. With an empty
// id one is generated; reusing an id that is live here or persisted active
// by another process fails with ErrDuplicateSession.
func (s *Service) StartNewSession(sessionID string) (*models.SessionContext, error) {
	if sessionID != "" && !s.degraded {
		persisted, lerr := s.store.LoadSession(sessionID)
		if lerr != nil {
			s.enterDegraded(lerr)
		} else if persisted != nil && persisted.Active {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSession, sessionID)
		}
	}

	sc, err := s.tracker.Start(sessionID)
	if err != nil {
		return nil, err
	}

	if !s.degraded {
		if err := s.store.SaveSession(sc); err != nil {
			s.enterDegraded(err)
		}
	}
	log.Printf("[Memory] started session %s", sc.SessionID)
	return sc, nil
}

// EndSession marks a session ended, summarizes it and persists the final
// context. Ending twice is a no-op returning the already-ended context.
func (s *Service) EndSession(sessionID string) (*models.SessionContext, error) {
	sc, changed, err := s.tracker.End(sessionID)
	if errors.Is(err, ErrUnknownSession) && !s.degraded {
		// session may have been started by another process; fall back to
		// the persisted context
		persisted, lerr := s.store.LoadSession(sessionID)
		if lerr == nil && persisted != nil {
			s.tracker.Adopt(persisted)
			sc, changed, err = s.tracker.End(sessionID)
		}
	}
	if err != nil {
		return nil, err
	}
	if !changed {
		return sc, nil
	}

	turnCount := 0
	if !s.degraded {
		if n, cerr := s.store.CountTurns(sessionID); cerr == nil {
			turnCount = n
		}
	}
	sc.ConversationSummary = s.summarize(sc, turnCount)

	if !s.degraded {
		if err := s.store.SaveSession(sc); err != nil {
			s.enterDegraded(err)
		}
	}
	log.Printf("[Memory] ended session %s (%d turns)", sc.SessionID, turnCount)
	return sc, nil
}

func (s *Service) summarize(sc *models.SessionContext, turnCount int) string {
	if s.summarizer != nil && !s.degraded {
		turns, err := s.store.GetHistory(sc.SessionID, s.cfg.HistoryLimit, 0)
		if err == nil {
			if summary, serr := s.summarizer.SummarizeSession(sc, turns); serr == nil && summary != "" {
				return summary
			} else if serr != nil {
				log.Printf("[Memory] rich summary failed, using heuristic: %v", serr)
			}
		}
	}
	return Summarize(sc, turnCount)
}

// --- Turn storage ---

// StoreConversation records one exchange: classifies the emotion when none
// was supplied, extracts preferences, scores importance and updates the
// session's rolling state. summaryHint annotates the turn; when empty a
// topic-based summary is derived. On a storage failure the turn is still
// tracked in memory and the wrapped error is returned alongside the turn.
func (s *Service) StoreConversation(sessionID, userInput, aiResponse, emotion, summaryHint string) (*models.ConversationTurn, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, &ValidationError{Field: "session_id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(userInput) == "" {
		return nil, &ValidationError{Field: "user_input", Reason: "must not be empty"}
	}

	if emotion == "" {
		emotion = s.classifier.Classify(userInput)
	}

	candidates := s.extractor.Extract(userInput, aiResponse)

	turn := models.NewTurn(sessionID, userInput, aiResponse, emotion)
	turn.ImportanceScore = Importance(emotion, len(candidates) > 0)

	if err := s.tracker.RecordTurn(sessionID, userInput, emotion); err != nil {
		if !errors.Is(err, ErrUnknownSession) || s.degraded {
			return nil, err
		}
		// session may have been started by another process; fall back to
		// the persisted context
		persisted, lerr := s.store.LoadSession(sessionID)
		if lerr != nil || persisted == nil {
			return nil, err
		}
		if !persisted.Active {
			return nil, &ValidationError{Field: "session_id", Reason: "session has ended"}
		}
		s.tracker.Adopt(persisted)
		if err := s.tracker.RecordTurn(sessionID, userInput, emotion); err != nil {
			return nil, err
		}
	}
	sc := s.tracker.Get(sessionID)
	turn.ContextSummary = summaryHint
	if turn.ContextSummary == "" && len(sc.TopicKeywords) > 0 {
		n := len(sc.TopicKeywords)
		if n > 5 {
			n = 5
		}
		turn.ContextSummary = "Topics: " + strings.Join(sc.TopicKeywords[:n], ", ")
	}

	if s.degraded {
		return turn, nil
	}

	if _, err := s.store.InsertTurn(turn); err != nil {
		s.enterDegraded(err)
		return turn, err
	}

	for _, c := range candidates {
		if err := s.store.UpsertPreference(c.Type, c.Key, c.Value, c.Confidence); err != nil {
			s.enterDegraded(err)
			return turn, err
		}
	}

	if err := s.store.SaveSession(sc); err != nil {
		s.enterDegraded(err)
		return turn, err
	}

	return turn, nil
}

// --- Retrieval ---

// GetRecentHistory returns the session's most recent turns in chronological
// order. limit <= 0 uses the configured default.
func (s *Service) GetRecentHistory(sessionID string, limit int) ([]models.ConversationTurn, error) {
	if limit <= 0 {
		limit = s.cfg.HistoryLimit
	}
	if s.degraded {
		return nil, fmt.Errorf("history unavailable in memory-only mode")
	}
	return s.store.GetHistory(sessionID, limit, 0)
}

// SearchConversations matches a case-insensitive substring across all
// sessions, most recent first.
func (s *Service) SearchConversations(query string, limit int) ([]models.ConversationTurn, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "query", Reason: "must not be empty"}
	}
	if limit <= 0 {
		limit = s.cfg.SearchLimit
	}
	if s.degraded {
		return nil, fmt.Errorf("search unavailable in memory-only mode")
	}
	return s.store.SearchTurns(query, limit)
}

// GetSession returns the live context for a session id, or the persisted
// one when it is no longer tracked. Unknown ids fail with ErrUnknownSession.
func (s *Service) GetSession(sessionID string) (*models.SessionContext, error) {
	if sc := s.tracker.Get(sessionID); sc != nil {
		return sc, nil
	}
	if !s.degraded {
		sc, err := s.store.LoadSession(sessionID)
		if err != nil {
			return nil, err
		}
		if sc != nil {
			return sc, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
}

// --- Preferences ---

// SetPreference stores a preference explicitly (outside extraction)
func (s *Service) SetPreference(ptype, key string, value models.Value, confidence float64) error {
	if strings.TrimSpace(key) == "" {
		return &ValidationError{Field: "key", Reason: "must not be empty"}
	}
	if confidence < 0 || confidence > 1 {
		return &ValidationError{Field: "confidence", Reason: fmt.Sprintf("must be 0-1, got %g", confidence)}
	}
	if s.degraded {
		return fmt.Errorf("preferences unavailable in memory-only mode")
	}
	return s.store.UpsertPreference(ptype, key, value, confidence)
}

// GetPreference retrieves one preference and counts the reference. Returns
// nil without error when absent.
func (s *Service) GetPreference(ptype, key string) (*models.UserPreference, error) {
	if s.degraded {
		return nil, fmt.Errorf("preferences unavailable in memory-only mode")
	}
	pref, err := s.store.GetPreference(ptype, key)
	if err != nil || pref == nil {
		return pref, err
	}
	if err := s.store.TouchPreference(ptype, key); err != nil {
		return pref, err
	}
	pref.UsageCount++
	return pref, nil
}

// GetUserPreferences lists preferences, optionally filtered by type.
// Listing does not count as a reference.
func (s *Service) GetUserPreferences(typeFilter string) ([]models.UserPreference, error) {
	if s.degraded {
		return nil, fmt.Errorf("preferences unavailable in memory-only mode")
	}
	return s.store.ListPreferences(typeFilter)
}

// --- Context assembly ---

// defaultContextTurns bounds the recent-turn window of a context bundle
// when the caller does not ask for a specific size.
const defaultContextTurns = 10

// BuildContext assembles the prompt-ready context bundle for a session.
// maxTurns <= 0 uses the default window of 10.
func (s *Service) BuildContext(sessionID string, maxTurns int) (*ContextBundle, error) {
	sc, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if maxTurns <= 0 {
		maxTurns = defaultContextTurns
	}

	var history []models.ConversationTurn
	var prefs []models.UserPreference
	if !s.degraded {
		if h, herr := s.store.GetHistory(sessionID, maxTurns, 0); herr == nil {
			history = h
		}
		if p, perr := s.store.ListPreferences(""); perr == nil {
			prefs = p
		}
	}

	return AssembleContext(sc, history, prefs), nil
}

// GenerateContextSummary returns the current summary text for a session,
// whether live or already persisted.
func (s *Service) GenerateContextSummary(sessionID string) (string, error) {
	sc, err := s.GetSession(sessionID)
	if err != nil {
		return "", err
	}
	turnCount := 0
	if !s.degraded {
		if n, cerr := s.store.CountTurns(sessionID); cerr == nil {
			turnCount = n
		}
	}
	return Summarize(sc, turnCount), nil
}

// --- Startup, maintenance, shutdown ---

// RestoreOnStartup reconciles persisted state after a restart: active
// sessions last touched before this process started belong to a dead one
// and are closed out. Sessions another live process is still feeding are
// left alone. The ended sessions are returned for inspection or logging.
func (s *Service) RestoreOnStartup() ([]models.SessionContext, error) {
	stale, err := s.store.ListActiveSessions()
	if err != nil {
		return nil, err
	}

	var ended []models.SessionContext
	for i := range stale {
		sc := &stale[i]
		if !sc.LastActivity.Before(s.started) {
			continue
		}
		if !sc.End() {
			continue
		}
		turnCount, _ := s.store.CountTurns(sc.SessionID)
		sc.ConversationSummary = Summarize(sc, turnCount)
		if err := s.store.SaveSession(sc); err != nil {
			return ended, err
		}
		ended = append(ended, *sc)
	}
	if len(ended) > 0 {
		log.Printf("[Memory] closed %d stale session(s) from previous run", len(ended))
	}
	return ended, nil
}

// ExportUserData returns a structured snapshot of everything the service
// has retained: preferences plus sessions with their turns.
func (s *Service) ExportUserData() (*sqlite.ExportData, error) {
	if s.degraded {
		return nil, fmt.Errorf("export unavailable in memory-only mode")
	}
	return s.store.Export()
}

// CleanupOldConversations prunes low-importance turns older than the
// configured retention window. High-importance turns survive.
func (s *Service) CleanupOldConversations() (int64, error) {
	if s.degraded {
		return 0, fmt.Errorf("cleanup unavailable in memory-only mode")
	}
	removed, err := s.store.CleanupOlderThan(s.cfg.RetentionDays, s.cfg.KeepImportance)
	if err == nil && removed > 0 {
		log.Printf("[Memory] cleanup removed %d old turn(s)", removed)
	}
	return removed, err
}

// StatusReport is a point-in-time health snapshot
type StatusReport struct {
	DBPath         string    `json:"db_path"`
	Degraded       bool      `json:"degraded"`
	ActiveSessions int       `json:"active_sessions"`
	TotalSessions  int       `json:"total_sessions"`
	Preferences    int       `json:"preferences"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Status reports service health and rough store sizes
func (s *Service) Status() *StatusReport {
	report := &StatusReport{
		DBPath:         s.store.Path(),
		Degraded:       s.degraded,
		ActiveSessions: len(s.tracker.Active()),
		GeneratedAt:    time.Now().UTC(),
	}
	if !s.degraded {
		if sessions, err := s.store.ListSessions(); err == nil {
			report.TotalSessions = len(sessions)
		}
		if prefs, err := s.store.ListPreferences(""); err == nil {
			report.Preferences = len(prefs)
		}
	}
	return report
}

// Close ends any still-active sessions, flushes them and closes the store
func (s *Service) Close() error {
	for _, sc := range s.tracker.Active() {
		if _, err := s.EndSession(sc.SessionID); err != nil {
			log.Printf("[Memory] failed to end session %s on close: %v", sc.SessionID, err)
		}
	}
	return s.store.Close()
}
