// ABOUTME: OpenAI client for rich session summaries and LLM preference extraction
// ABOUTME: Optional edge feature with retries; the memory core never requires it
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/quickpet/recall/internal/config"
	"github.com/quickpet/recall/internal/core"
	"github.com/quickpet/recall/internal/models"
	"github.com/quickpet/recall/internal/util"
)

// OpenAIClient wraps the OpenAI API with retry logic. It backs the optional
// rich summarizer and the optional LLM preference extractor.
type OpenAIClient struct {
	client     *openai.Client
	chatModel  string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIClient creates a client from the service configuration. Fails
// when no API key is configured; callers treat that as "feature off".
func NewOpenAIClient(cfg *config.Config) (*OpenAIClient, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIClient{
		client:     openai.NewClient(cfg.OpenAIKey),
		chatModel:  cfg.ChatModel,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// chat runs one completion with retries and returns the first choice
func (c *OpenAIClient) chat(systemPrompt, userPrompt string, temperature float32) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			Temperature: temperature,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// SummarizeSession produces a short natural-language summary of a finished
// session. Implements the service's Summarizer hook.
func (c *OpenAIClient) SummarizeSession(sc *models.SessionContext, turns []models.ConversationTurn) (string, error) {
	if len(turns) == 0 {
		return "", fmt.Errorf("no turns to summarize")
	}

	systemPrompt := `You summarize conversations between a child and a small companion robot.
Write ONE sentence covering the main topics and the child's overall mood.
Plain text only, no preamble.`

	var sb strings.Builder
	fmt.Fprintf(&sb, "Mood trend: %s\n\n", strings.Join(sc.EmotionalTrend, ", "))
	for _, t := range turns {
		fmt.Fprintf(&sb, "User: %s\nRobot: %s\n", t.UserInput, t.AIResponse)
	}

	summary, err := c.chat(systemPrompt, sb.String(), 0.3)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

// Extract asks the model for preference facts in the same shape the
// heuristic extractor produces. Implements PreferenceExtractor; any failure
// yields an empty list, never an error surface.
func (c *OpenAIClient) Extract(userInput, aiResponse string) []core.Candidate {
	systemPrompt := `You extract user preferences from one conversational exchange.
Allowed types: user_info, personality, behavior.
Return ONLY a JSON array of objects with fields: type, key, value, confidence (0.0-1.0).
Keys are lowercase with underscores. Return [] when nothing is stated explicitly.`

	userPrompt := fmt.Sprintf("User: %s\nRobot: %s", userInput, aiResponse)

	content, err := c.chat(systemPrompt, userPrompt, 0.1)
	if err != nil {
		return nil
	}

	type prefResponse struct {
		Type       string  `json:"type"`
		Key        string  `json:"key"`
		Value      string  `json:"value"`
		Confidence float64 `json:"confidence"`
	}
	var parsed []prefResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil
	}

	var candidates []core.Candidate
	for _, p := range parsed {
		if p.Key == "" || p.Value == "" {
			continue
		}
		candidates = append(candidates, core.Candidate{
			Type:       p.Type,
			Key:        p.Key,
			Value:      models.TextValue(p.Value),
			Confidence: models.Clamp01(p.Confidence),
		})
	}
	return candidates
}
