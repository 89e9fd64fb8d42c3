// ABOUTME: Emotion classification for incoming turns
// ABOUTME: Keyword matcher by default; callers may pass a detected emotion instead
package core

import (
	"strings"

	"github.com/quickpet/recall/internal/models"
)

// EmotionClassifier labels an utterance with one of the known emotions.
// Used only when the caller did not supply a detected emotion.
type EmotionClassifier interface {
	Classify(text string) string
}

var emotionKeywords = map[string][]string{
	models.EmotionHappy:     {"great", "awesome", "wonderful", "glad", "happy", "nice", "thanks", "thank you"},
	models.EmotionExcited:   {"wow", "amazing", "can't wait", "cant wait", "excited", "incredible"},
	models.EmotionSad:       {"sad", "unhappy", "miss", "lonely", "depressed", "cry"},
	models.EmotionAngry:     {"angry", "annoyed", "hate", "furious", "stupid", "terrible"},
	models.EmotionSurprised: {"what?!", "really?", "no way", "surprised", "unexpected"},
	models.EmotionConfused:  {"confused", "don't understand", "dont understand", "what do you mean", "huh"},
	models.EmotionThinking:  {"hmm", "let me think", "wondering", "maybe", "not sure"},
}

// Order matters: stronger emotions are checked first so a text containing
// both "hate" and "maybe" reads as angry.
var emotionOrder = []string{
	models.EmotionAngry,
	models.EmotionSad,
	models.EmotionExcited,
	models.EmotionSurprised,
	models.EmotionHappy,
	models.EmotionConfused,
	models.EmotionThinking,
}

// KeywordClassifier is the default offline classifier. It is deliberately
// crude: the runtime usually supplies an emotion from its own detector and
// this only fills the gap.
type KeywordClassifier struct{}

// NewKeywordClassifier creates the default classifier
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify returns the first emotion whose keywords appear in the text, or
// neutral when nothing matches.
func (c *KeywordClassifier) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, emotion := range emotionOrder {
		for _, kw := range emotionKeywords[emotion] {
			if strings.Contains(lower, kw) {
				return emotion
			}
		}
	}
	return models.EmotionNeutral
}
