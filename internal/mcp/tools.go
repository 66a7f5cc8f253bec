// ABOUTME: MCP tool definitions and registration for the companion server
// ABOUTME: Defines JSON schemas for all companion tools
package mcp

import (
	"github.com/harper/companion/internal/chat"
	"github.com/harper/companion/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, client *chat.Client, store storage.Store, userID string) *Handlers {
	handlers := &Handlers{
		client: client,
		store:  store,
		userID: userID,
	}

	// 1. send_message - Send a chat message through the companion backend
	server.AddTool(mcp.Tool{
		Name:        "send_message",
		Description: "Send a message to the companion and receive the full response. The message is emotion-tagged, persisted, and mined for memories automatically.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "Message to send",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.SendMessage)

	// 2. get_profile - Get the user profile
	server.AddTool(mcp.Tool{
		Name:        "get_profile",
		Description: "Get the user profile with personality traits, preferences, goals, and communication style.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetProfile)

	// 3. update_profile - Update user profile fields directly
	server.AddTool(mcp.Tool{
		Name:        "update_profile",
		Description: "Update the user profile with a display name, goals, challenges, or communication style. All fields are optional - only provided fields will be updated.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"display_name": map[string]interface{}{
					"type":        "string",
					"description": "User's display name",
				},
				"goals": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Goals to add (e.g., 'run a marathon', 'learn Spanish')",
				},
				"challenges": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Challenges to add (e.g., 'work stress')",
				},
				"communication_style": map[string]interface{}{
					"type":        "string",
					"description": "One of: casual, professional, empathetic, balanced",
				},
			},
		},
	}, handlers.UpdateProfile)

	// 4. list_memories - List extracted user memories
	server.AddTool(mcp.Tool{
		Name:        "list_memories",
		Description: "List the most important memories extracted from past conversations.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of memories to return (default: 10)",
					"default":     10,
				},
			},
		},
	}, handlers.ListMemories)

	// 5. list_emotions - List recent emotion history
	server.AddTool(mcp.Tool{
		Name:        "list_emotions",
		Description: "List recent emotion history entries recorded for the user.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of entries to return (default: 10)",
					"default":     10,
				},
			},
		},
	}, handlers.ListEmotions)

	// 6. detect_emotion - Run the emotion heuristic without sending anything
	server.AddTool(mcp.Tool{
		Name:        "detect_emotion",
		Description: "Classify a piece of text into an emotion label with a confidence score. Pure analysis - nothing is sent or stored.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to classify",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.DetectEmotion)

	return handlers
}
