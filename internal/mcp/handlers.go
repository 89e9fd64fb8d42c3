// ABOUTME: MCP tool handler implementations for the recall server
// ABOUTME: Thin JSON adapters over the conversation memory service
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/quickpet/recall/internal/core"
	"github.com/quickpet/recall/internal/models"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	service *core.Service
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func sessionResponse(sc *models.SessionContext) map[string]interface{} {
	return map[string]interface{}{
		"session_id":     sc.SessionID,
		"start_time":     sc.StartTime.Format(time.RFC3339),
		"last_activity":  sc.LastActivity.Format(time.RFC3339),
		"user_mood":      sc.UserMood,
		"topic_keywords": sc.TopicKeywords,
		"summary":        sc.ConversationSummary,
		"active":         sc.Active,
	}
}

func turnResponse(t *models.ConversationTurn) map[string]interface{} {
	return map[string]interface{}{
		"id":          t.ID,
		"timestamp":   t.Timestamp.Format(time.RFC3339),
		"session_id":  t.SessionID,
		"user_input":  t.UserInput,
		"ai_response": t.AIResponse,
		"emotion":     t.EmotionDetected,
		"importance":  t.ImportanceScore,
	}
}

// StartSession handles the start_session tool
func (h *Handlers) StartSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	sc, err := h.service.StartNewSession(sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start session: %v", err)), nil
	}
	return jsonResult(sessionResponse(sc))
}

// EndSession handles the end_session tool
func (h *Handlers) EndSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	sc, err := h.service.EndSession(sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to end session: %v", err)), nil
	}
	return jsonResult(sessionResponse(sc))
}

// StoreConversation handles the store_conversation tool
func (h *Handlers) StoreConversation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}
	userInput, err := request.RequireString("user_input")
	if err != nil {
		return mcp.NewToolResultError("user_input argument is required and must be a string"), nil
	}
	aiResponse := request.GetString("ai_response", "")
	emotion := request.GetString("emotion", "")
	summaryHint := request.GetString("summary_hint", "")

	turn, err := h.service.StoreConversation(sessionID, userInput, aiResponse, emotion, summaryHint)
	if err != nil {
		if turn != nil {
			// persistence lost but the turn is tracked in memory
			resp := turnResponse(turn)
			resp["degraded"] = true
			return jsonResult(resp)
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to store conversation: %v", err)), nil
	}
	return jsonResult(turnResponse(turn))
}

// GetHistory handles the get_history tool
func (h *Handlers) GetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}
	limit := request.GetInt("limit", 0)

	turns, err := h.service.GetRecentHistory(sessionID, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get history: %v", err)), nil
	}

	out := make([]map[string]interface{}, 0, len(turns))
	for i := range turns {
		out = append(out, turnResponse(&turns[i]))
	}
	return jsonResult(map[string]interface{}{"session_id": sessionID, "turns": out})
}

// SearchConversations handles the search_conversations tool
func (h *Handlers) SearchConversations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	limit := request.GetInt("limit", 0)

	turns, err := h.service.SearchConversations(query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	out := make([]map[string]interface{}, 0, len(turns))
	for i := range turns {
		out = append(out, turnResponse(&turns[i]))
	}
	return jsonResult(map[string]interface{}{"query": query, "results": out})
}

// BuildContext handles the build_context tool
func (h *Handlers) BuildContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	maxTurns := request.GetInt("max_turns", 0)

	bundle, err := h.service.BuildContext(sessionID, maxTurns)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build context: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"bundle": bundle,
		"prompt": bundle.Prompt(),
	})
}

// GetPreference handles the get_preference tool
func (h *Handlers) GetPreference(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ptype, err := request.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type argument is required and must be a string"), nil
	}
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key argument is required and must be a string"), nil
	}

	pref, err := h.service.GetPreference(ptype, key)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get preference: %v", err)), nil
	}
	if pref == nil {
		return jsonResult(map[string]interface{}{"found": false})
	}
	return jsonResult(map[string]interface{}{
		"found":       true,
		"type":        pref.Type,
		"key":         pref.Key,
		"value":       pref.Value.String(),
		"confidence":  pref.Confidence,
		"usage_count": pref.UsageCount,
	})
}

// SetPreference handles the set_preference tool
func (h *Handlers) SetPreference(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ptype, err := request.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type argument is required and must be a string"), nil
	}
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key argument is required and must be a string"), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value argument is required and must be a string"), nil
	}
	confidence := request.GetFloat("confidence", 1.0)

	if err := h.service.SetPreference(ptype, key, models.TextValue(value), confidence); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set preference: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"success": true})
}

// GetStatus handles the get_status tool
func (h *Handlers) GetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.service.Status())
}
