// ABOUTME: In-memory session context tracker with capped rolling state
// ABOUTME: Keyword extraction, emotional trend, mood smoothing and importance scoring
package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/quickpet/recall/internal/models"
)

// emotionIntensity maps each emotion to how strongly it should weigh into
// importance scoring. Unknown labels score zero.
var emotionIntensity = map[string]float64{
	models.EmotionHappy:     0.7,
	models.EmotionExcited:   0.8,
	models.EmotionSad:       0.9,
	models.EmotionAngry:     0.9,
	models.EmotionSurprised: 0.8,
	models.EmotionConfused:  0.6,
	models.EmotionThinking:  0.5,
	models.EmotionNeutral:   0.0,
}

// EmotionIntensity returns the scoring weight of an emotion label
func EmotionIntensity(emotion string) float64 {
	return emotionIntensity[emotion]
}

// Importance computes a turn's importance score from the emotion of the turn
// and whether preference extraction matched anything. The result is clamped
// to [0, 1] and assigned once at store time.
func Importance(emotion string, prefMatched bool) float64 {
	score := 0.5 + 0.3*EmotionIntensity(emotion)
	if prefMatched {
		score += 0.2
	}
	return models.Clamp01(score)
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "him": true, "his": true, "how": true, "its": true,
	"may": true, "she": true, "use": true, "that": true, "this": true,
	"with": true, "have": true, "from": true, "they": true, "been": true,
	"will": true, "what": true, "when": true, "your": true, "there": true,
	"would": true, "could": true, "should": true, "about": true,
	"like": true, "just": true, "know": true, "want": true, "dont": true,
	"really": true, "think": true, "some": true, "them": true, "then": true,
	"than": true, "were": true, "into": true, "very": true, "also": true,
}

// ExtractKeywords pulls topic words out of an utterance: lowercased,
// punctuation stripped, stopwords and short tokens dropped, duplicates
// removed preserving first-seen order.
func ExtractKeywords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})

	seen := make(map[string]bool, len(fields))
	var keywords []string
	for _, w := range fields {
		if len(w) <= 2 || stopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
	}
	return keywords
}

// Tracker holds the active session contexts in memory. All state mutation
// goes through it; persistence is the service's concern.
type Tracker struct {
	mu         sync.RWMutex
	sessions   map[string]*models.SessionContext
	keywordCap int
	trendCap   int
	moodWindow int
	moodPrior  string
}

// NewTracker creates a tracker with the given rolling-state caps
func NewTracker(keywordCap, trendCap, moodWindow int, moodPrior string) *Tracker {
	return &Tracker{
		sessions:   make(map[string]*models.SessionContext),
		keywordCap: keywordCap,
		trendCap:   trendCap,
		moodWindow: moodWindow,
		moodPrior:  moodPrior,
	}
}

// Start registers a new active session. A generated id is used when
// sessionID is empty. Starting an id that is already live fails with
// ErrDuplicateSession.
func (t *Tracker) Start(sessionID string) (*models.SessionContext, error) {
	if sessionID == "" {
		sessionID = models.GenerateSessionID()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.sessions[sessionID]; ok && existing.Active {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSession, sessionID)
	}

	sc := models.NewSessionContext(sessionID, t.moodPrior)
	t.sessions[sessionID] = sc
	return sc, nil
}

// Adopt inserts an existing session context (used on startup restore).
// An already-tracked id is left untouched.
func (t *Tracker) Adopt(sc *models.SessionContext) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.sessions[sc.SessionID]; !ok {
		t.sessions[sc.SessionID] = sc
	}
}

// Get returns the tracked session context, or nil when unknown
func (t *Tracker) Get(sessionID string) *models.SessionContext {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sessions[sessionID]
}

// Active returns all live session contexts
func (t *Tracker) Active() []*models.SessionContext {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []*models.SessionContext
	for _, sc := range t.sessions {
		if sc.Active {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

// RecordTurn folds one turn into the session's rolling state: keywords are
// merged under the keyword cap, the emotion joins the trend under the trend
// cap, and the mood becomes the most frequent emotion in the mood window.
func (t *Tracker) RecordTurn(sessionID, userInput, emotion string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	sc, ok := t.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}
	if !sc.Active {
		return &ValidationError{Field: "session", Reason: "session has ended"}
	}

	sc.LastActivity = time.Now().UTC()

	for _, kw := range ExtractKeywords(userInput) {
		if containsString(sc.TopicKeywords, kw) {
			continue
		}
		sc.TopicKeywords = append(sc.TopicKeywords, kw)
	}
	if len(sc.TopicKeywords) > t.keywordCap {
		sc.TopicKeywords = sc.TopicKeywords[len(sc.TopicKeywords)-t.keywordCap:]
	}

	sc.EmotionalTrend = append(sc.EmotionalTrend, emotion)
	if len(sc.EmotionalTrend) > t.trendCap {
		sc.EmotionalTrend = sc.EmotionalTrend[len(sc.EmotionalTrend)-t.trendCap:]
	}

	sc.UserMood = dominantMood(sc.EmotionalTrend, t.moodWindow, t.moodPrior)
	return nil
}

// End marks a session ended and returns its context. The second call on the
// same id reports changed=false; unknown ids fail.
func (t *Tracker) End(sessionID string) (sc *models.SessionContext, changed bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sc, ok := t.sessions[sessionID]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}
	return sc, sc.End(), nil
}

// Forget drops a session from the tracker (after its row is persisted)
func (t *Tracker) Forget(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, sessionID)
}

// Summarize produces the one-line heuristic session summary
func Summarize(sc *models.SessionContext, turnCount int) string {
	topics := "none"
	if len(sc.TopicKeywords) > 0 {
		n := len(sc.TopicKeywords)
		if n > 5 {
			n = 5
		}
		topics = strings.Join(sc.TopicKeywords[:n], ", ")
	}
	return fmt.Sprintf("Main topics: %s; dominant mood: %s; turns: %d", topics, sc.UserMood, turnCount)
}

// dominantMood returns the most frequent emotion over the last window
// entries of the trend. Ties break toward the most recent occurrence; an
// empty trend yields the prior.
func dominantMood(trend []string, window int, prior string) string {
	if len(trend) == 0 {
		if prior == "" {
			return models.EmotionNeutral
		}
		return prior
	}
	if len(trend) > window {
		trend = trend[len(trend)-window:]
	}

	counts := make(map[string]int, len(trend))
	lastIdx := make(map[string]int, len(trend))
	for i, e := range trend {
		counts[e]++
		lastIdx[e] = i
	}

	best := trend[len(trend)-1]
	for e, c := range counts {
		if c > counts[best] || (c == counts[best] && lastIdx[e] > lastIdx[best]) {
			best = e
		}
	}
	return best
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
