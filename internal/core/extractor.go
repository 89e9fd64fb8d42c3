// ABOUTME: Heuristic preference extraction from user utterances
// ABOUTME: Regex pattern classes; first matching rule wins per category
package core

import (
	"regexp"
	"strings"

	"github.com/quickpet/recall/internal/models"
)

// Candidate is one preference fact detected in an utterance. The caller is
// responsible for persisting candidates it wants to keep.
type Candidate struct {
	Type       string
	Key        string
	Value      models.Value
	Confidence float64
}

// PreferenceExtractor detects preference-bearing statements in a turn.
// Implementations never fail: unmatched or malformed text yields an empty
// list.
type PreferenceExtractor interface {
	Extract(userInput, aiResponse string) []Candidate
}

var (
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bmy name is\s+([A-Za-z][A-Za-z'\-]*)`),
		regexp.MustCompile(`(?i)\bi['\x60]?m called\s+([A-Za-z][A-Za-z'\-]*)`),
		regexp.MustCompile(`(?i)\bcall me\s+([A-Za-z][A-Za-z'\-]*)`),
	}

	interestPattern = regexp.MustCompile(`(?i)\bi\s+(?:really\s+)?(?:like|love|enjoy)\s+([a-z0-9][a-z0-9 '\-]*)`)
)

// Phrase rules are checked in order; the first hit in a category wins, so
// the more specific phrases come first.
var speedRules = []struct {
	phrase string
	value  string
}{
	{"slow down", "slow"},
	{"too fast", "slow"},
	{"slower", "slow"},
	{"speed up", "fast"},
	{"too slow", "fast"},
	{"faster", "fast"},
}

var styleRules = []struct {
	phrase string
	value  string
}{
	{"keep it short", "concise"},
	{"be brief", "concise"},
	{"less detail", "concise"},
	{"shorter answers", "concise"},
	{"more detail", "verbose"},
	{"be detailed", "verbose"},
	{"elaborate", "verbose"},
	{"longer answers", "verbose"},
}

// HeuristicExtractor is the default pattern-matching extractor. A future
// NLP-backed implementation can replace it behind the PreferenceExtractor
// interface without touching the memory core.
type HeuristicExtractor struct{}

// NewHeuristicExtractor creates the default extractor
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

// Extract scans the user utterance for preference statements. At most one
// candidate per category is emitted.
func (e *HeuristicExtractor) Extract(userInput, aiResponse string) []Candidate {
	var candidates []Candidate
	lower := strings.ToLower(userInput)

	// Self-identification
	for _, re := range namePatterns {
		if m := re.FindStringSubmatch(userInput); m != nil {
			candidates = append(candidates, Candidate{
				Type:       models.PrefUserInfo,
				Key:        "name",
				Value:      models.TextValue(m[1]),
				Confidence: 0.9,
			})
			break
		}
	}

	// Interest statements
	if m := interestPattern.FindStringSubmatch(userInput); m != nil {
		if slug := slugify(m[1]); slug != "" {
			candidates = append(candidates, Candidate{
				Type:       models.PrefPersonality,
				Key:        "interest." + slug,
				Value:      models.BoolValue(true),
				Confidence: 0.6,
			})
		}
	}

	// Pacing requests
	for _, rule := range speedRules {
		if strings.Contains(lower, rule.phrase) {
			candidates = append(candidates, Candidate{
				Type:       models.PrefBehavior,
				Key:        "speed_preference",
				Value:      models.TextValue(rule.value),
				Confidence: 0.7,
			})
			break
		}
	}

	// Style requests
	for _, rule := range styleRules {
		if strings.Contains(lower, rule.phrase) {
			candidates = append(candidates, Candidate{
				Type:       models.PrefBehavior,
				Key:        "response_style",
				Value:      models.TextValue(rule.value),
				Confidence: 0.7,
			})
			break
		}
	}

	return candidates
}

// slugify lowercases and normalizes an interest phrase into a key segment
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
