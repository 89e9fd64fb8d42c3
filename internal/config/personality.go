// ABOUTME: Personality config document consumed once at startup
// ABOUTME: Seeds the session tracker's mood prior; never written back
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Personality describes the robot's default character traits
type Personality struct {
	Name         string  `json:"name"`
	Friendliness float64 `json:"friendliness"`
	EnergyLevel  float64 `json:"energy_level"`
	Curiosity    float64 `json:"curiosity"`
	Playfulness  float64 `json:"playfulness"`
	DefaultMood  string  `json:"default_mood"`
}

// PersonalityConfig is the JSON document supplied by the runtime scripts.
// This core only consumes it; persistence of personality changes belongs to
// the personality layer.
type PersonalityConfig struct {
	Personality         Personality       `json:"personality"`
	VoicePreferences    map[string]string `json:"voice_preferences,omitempty"`
	BehaviorPreferences map[string]string `json:"behavior_preferences,omitempty"`
}

// DefaultPersonality returns the built-in defaults used when no config file
// is present.
func DefaultPersonality() *PersonalityConfig {
	return &PersonalityConfig{
		Personality: Personality{
			Name:         "Sparky",
			Friendliness: 0.8,
			EnergyLevel:  0.7,
			Curiosity:    0.6,
			Playfulness:  0.9,
			DefaultMood:  "neutral",
		},
	}
}

// LoadPersonality reads the personality document from path. A missing file
// yields the defaults; a malformed file is an error.
func LoadPersonality(path string) (*PersonalityConfig, error) {
	if path == "" {
		return DefaultPersonality(), nil
	}

	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPersonality(), nil
		}
		return nil, fmt.Errorf("failed to read personality config: %w", err)
	}

	var cfg PersonalityConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse personality config: %w", err)
	}
	return &cfg, nil
}

// MoodPrior returns the initial mood for new sessions
func (pc *PersonalityConfig) MoodPrior() string {
	if pc == nil || pc.Personality.DefaultMood == "" {
		return "neutral"
	}
	return pc.Personality.DefaultMood
}
