// ABOUTME: Tests for the heuristic preference extractor
// ABOUTME: Verifies pattern classes, confidence levels and no-match purity
package core

import (
	"testing"

	"github.com/quickpet/recall/internal/models"
)

func findCandidate(cands []Candidate, ptype, key string) *Candidate {
	for i := range cands {
		if cands[i].Type == ptype && cands[i].Key == key {
			return &cands[i]
		}
	}
	return nil
}

func TestExtractName(t *testing.T) {
	e := NewHeuristicExtractor()

	for _, input := range []string{
		"My name is Alice",
		"Hey, my name is Alice!",
		"i'm called Alice",
		"please call me Alice",
	} {
		cands := e.Extract(input, "Nice to meet you!")
		c := findCandidate(cands, models.PrefUserInfo, "name")
		if c == nil {
			t.Fatalf("Extract(%q) found no name candidate", input)
		}
		if c.Value.String() != "Alice" {
			t.Errorf("Extract(%q) name = %q, want Alice", input, c.Value.String())
		}
		if c.Confidence != 0.9 {
			t.Errorf("Extract(%q) confidence = %v, want 0.9", input, c.Confidence)
		}
	}
}

func TestExtractInterest(t *testing.T) {
	e := NewHeuristicExtractor()

	cands := e.Extract("I really love rock music", "Rock on!")
	c := findCandidate(cands, models.PrefPersonality, "interest.rock_music")
	if c == nil {
		t.Fatal("Extract() found no interest candidate")
	}
	if c.Confidence != 0.6 {
		t.Errorf("confidence = %v, want 0.6", c.Confidence)
	}
}

func TestExtractSpeedAndStyle(t *testing.T) {
	e := NewHeuristicExtractor()

	cands := e.Extract("Please slow down and keep it short", "")
	if c := findCandidate(cands, models.PrefBehavior, "speed_preference"); c == nil || c.Value.String() != "slow" {
		t.Errorf("speed_preference = %v, want slow", c)
	}
	if c := findCandidate(cands, models.PrefBehavior, "response_style"); c == nil || c.Value.String() != "concise" {
		t.Errorf("response_style = %v, want concise", c)
	}

	cands = e.Extract("can you talk faster and elaborate more", "")
	if c := findCandidate(cands, models.PrefBehavior, "speed_preference"); c == nil || c.Value.String() != "fast" {
		t.Errorf("speed_preference = %v, want fast", c)
	}
	if c := findCandidate(cands, models.PrefBehavior, "response_style"); c == nil || c.Value.String() != "verbose" {
		t.Errorf("response_style = %v, want verbose", c)
	}
}

func TestExtractFirstMatchWinsPerCategory(t *testing.T) {
	e := NewHeuristicExtractor()

	cands := e.Extract("slow down, no wait, speed up", "")
	var speedCount int
	for _, c := range cands {
		if c.Key == "speed_preference" {
			speedCount++
		}
	}
	if speedCount != 1 {
		t.Errorf("got %d speed candidates, want 1", speedCount)
	}
}

func TestExtractNoMatch(t *testing.T) {
	e := NewHeuristicExtractor()

	for _, input := range []string{
		"",
		"what time is it",
		"asdf qwerty zxcv 12345 !!!",
		"the weather looks nice today",
	} {
		if cands := e.Extract(input, "some response"); len(cands) != 0 {
			t.Errorf("Extract(%q) = %v, want empty", input, cands)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"rock music", "rock_music"},
		{"Jazz", "jazz"},
		{"  hip-hop  ", "hip_hop"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
