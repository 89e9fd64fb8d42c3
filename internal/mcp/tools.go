// ABOUTME: MCP tool definitions and registration for the recall server
// ABOUTME: Defines JSON schemas for the conversation memory tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/quickpet/recall/internal/core"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, service *core.Service) *Handlers {
	handlers := &Handlers{service: service}

	// 1. start_session - begin a new interaction session
	server.AddTool(mcp.Tool{
		Name:        "start_session",
		Description: "Start a new conversation session. Returns the session id to use for subsequent turns.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Optional explicit session id; one is generated when omitted",
				},
			},
		},
	}, handlers.StartSession)

	// 2. end_session - close a session and summarize it
	server.AddTool(mcp.Tool{
		Name:        "end_session",
		Description: "End a conversation session. Generates the session summary and persists the final context. Idempotent.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id to end",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.EndSession)

	// 3. store_conversation - record one exchange
	server.AddTool(mcp.Tool{
		Name:        "store_conversation",
		Description: "Store one conversation exchange. Extracts preferences, scores importance and updates session state.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Active session id",
				},
				"user_input": map[string]interface{}{
					"type":        "string",
					"description": "What the user said",
				},
				"ai_response": map[string]interface{}{
					"type":        "string",
					"description": "What the assistant replied",
				},
				"emotion": map[string]interface{}{
					"type":        "string",
					"description": "Detected user emotion (neutral, happy, sad, excited, confused, angry, surprised, thinking). Classified from text when omitted.",
				},
				"summary_hint": map[string]interface{}{
					"type":        "string",
					"description": "Optional context summary for the turn; derived from session topics when omitted",
				},
			},
			Required: []string{"session_id", "user_input"},
		},
	}, handlers.StoreConversation)

	// 4. get_history - recent turns of a session
	server.AddTool(mcp.Tool{
		Name:        "get_history",
		Description: "Get the most recent turns of a session in chronological order.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of turns to return (default: 50)",
					"default":     50,
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.GetHistory)

	// 5. search_conversations - substring search across sessions
	server.AddTool(mcp.Tool{
		Name:        "search_conversations",
		Description: "Search all stored conversations for a case-insensitive substring, most recent first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Text to search for",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results (default: 20)",
					"default":     20,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchConversations)

	// 6. build_context - assembled prompt context
	server.AddTool(mcp.Tool{
		Name:        "build_context",
		Description: "Assemble the memory context for a session: mood, topics, relevant preferences and recent turns, ready for prompt injection.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id",
				},
				"max_turns": map[string]interface{}{
					"type":        "number",
					"description": "Maximum recent turns to include (default: 10)",
					"default":     10,
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.BuildContext)

	// 7. get_preference - single preference lookup (counts as a reference)
	server.AddTool(mcp.Tool{
		Name:        "get_preference",
		Description: "Get one stored user preference by type and key. Counts as a usage reference.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Preference type: user_info, personality or behavior",
				},
				"key": map[string]interface{}{
					"type":        "string",
					"description": "Preference key",
				},
			},
			Required: []string{"type", "key"},
		},
	}, handlers.GetPreference)

	// 8. set_preference - explicit preference write
	server.AddTool(mcp.Tool{
		Name:        "set_preference",
		Description: "Store a user preference explicitly. Overwrites the value and bumps the usage count when it already exists.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Preference type: user_info, personality or behavior",
				},
				"key": map[string]interface{}{
					"type":        "string",
					"description": "Preference key",
				},
				"value": map[string]interface{}{
					"type":        "string",
					"description": "Preference value",
				},
				"confidence": map[string]interface{}{
					"type":        "number",
					"description": "Confidence 0.0-1.0 (default: 1.0)",
					"default":     1.0,
				},
			},
			Required: []string{"type", "key", "value"},
		},
	}, handlers.SetPreference)

	// 9. get_status - service health snapshot
	server.AddTool(mcp.Tool{
		Name:        "get_status",
		Description: "Get a health snapshot: database path, degraded flag, session and preference counts.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetStatus)

	return handlers
}
