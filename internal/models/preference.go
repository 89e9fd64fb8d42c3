// ABOUTME: UserPreference represents a durable typed fact about the user
// ABOUTME: Identified by (preference_type, key); upserted, never duplicated
package models

import "time"

// Preference type namespaces. Keys are case-sensitive and only unique
// within their type, so user_info.name and behavior.name never collide.
const (
	PrefUserInfo    = "user_info"
	PrefPersonality = "personality"
	PrefBehavior    = "behavior"
)

// UserPreference is a durable fact about the user's tastes or desired
// interaction style. UsageCount grows every time the preference is
// referenced or re-asserted.
type UserPreference struct {
	Type        string    `json:"preference_type"`
	Key         string    `json:"key"`
	Value       Value     `json:"value"`
	Confidence  float64   `json:"confidence"`
	LastUpdated time.Time `json:"last_updated"`
	UsageCount  int       `json:"usage_count"`
}
