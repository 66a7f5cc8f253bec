// ABOUTME: MCP tool handler implementations for the companion server
// ABOUTME: Thin adapters from tool arguments to the chat client and record store
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/companion/internal/chat"
	"github.com/harper/companion/internal/emotion"
	"github.com/harper/companion/internal/models"
	"github.com/harper/companion/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	client *chat.Client
	store  storage.Store
	userID string
}

// SendMessage handles the send_message tool
func (h *Handlers) SendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	reply := h.client.SendMessage(ctx, message)

	response := map[string]interface{}{
		"response":           reply.Message,
		"emotion":            string(reply.Emotion),
		"emotion_confidence": reply.EmotionConfidence,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetProfile handles the get_profile tool
func (h *Handlers) GetProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profile, err := h.store.GetOrCreateProfile(h.userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load profile: %v", err)), nil
	}

	response := map[string]interface{}{
		"profile": profileResponse(profile),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// UpdateProfile handles the update_profile tool
func (h *Handlers) UpdateProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profile, err := h.store.GetOrCreateProfile(h.userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load profile: %v", err)), nil
	}

	if name := request.GetString("display_name", ""); name != "" {
		profile.DisplayName = name
	}

	if style := request.GetString("communication_style", ""); style != "" {
		if err := profile.SetCommunicationStyle(models.CommunicationStyle(style)); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid communication style: %v", err)), nil
		}
	}

	// Array arguments need the raw map
	if args, ok := request.Params.Arguments.(map[string]any); ok {
		for _, goal := range stringArray(args, "goals") {
			profile.AddGoal(goal)
		}
		for _, challenge := range stringArray(args, "challenges") {
			profile.AddChallenge(challenge)
		}
	}

	if err := h.store.SaveProfile(profile); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save profile: %v", err)), nil
	}

	response := map[string]interface{}{
		"success": true,
		"profile": profileResponse(profile),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListMemories handles the list_memories tool
func (h *Handlers) ListMemories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	maxResults := request.GetInt("max_results", 10)

	memories, err := h.store.TopMemories(h.userID, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load memories: %v", err)), nil
	}

	entries := make([]map[string]interface{}, 0, len(memories))
	for _, mem := range memories {
		entries = append(entries, map[string]interface{}{
			"memory_id":  mem.MemoryID,
			"type":       string(mem.Type),
			"content":    mem.Content,
			"importance": mem.Importance,
			"created_at": mem.CreatedAt.Format(time.RFC3339),
		})
	}

	responseJSON, err := json.Marshal(map[string]interface{}{"memories": entries})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListEmotions handles the list_emotions tool
func (h *Handlers) ListEmotions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	maxResults := request.GetInt("max_results", 10)

	history, err := h.store.RecentEmotions(h.userID, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load emotion history: %v", err)), nil
	}

	entries := make([]map[string]interface{}, 0, len(history))
	for _, entry := range history {
		entries = append(entries, map[string]interface{}{
			"entry_id":     entry.EntryID,
			"emotion":      string(entry.Emotion),
			"intensity":    entry.Intensity,
			"trigger_text": entry.TriggerText,
			"created_at":   entry.CreatedAt.Format(time.RFC3339),
		})
	}

	responseJSON, err := json.Marshal(map[string]interface{}{"emotions": entries})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// DetectEmotion handles the detect_emotion tool
func (h *Handlers) DetectEmotion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	detected, confidence := emotion.Detect(text)

	responseJSON, err := json.Marshal(map[string]interface{}{
		"emotion":    string(detected),
		"confidence": confidence,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// Shutdown waits for pending fire-and-forget memory writes to complete
func (h *Handlers) Shutdown() {
	h.client.Recorder().Wait()
}

func profileResponse(profile *models.UserProfile) map[string]interface{} {
	return map[string]interface{}{
		"user_id":             profile.UserID,
		"display_name":        profile.DisplayName,
		"personality_traits":  profile.PersonalityTraits,
		"preferences":         profile.Preferences,
		"goals":               profile.Goals,
		"challenges":          profile.Challenges,
		"communication_style": string(profile.CommunicationStyle),
		"updated_at":          profile.UpdatedAt.Format(time.RFC3339),
	}
}

// stringArray extracts a string array argument from the raw arguments map
func stringArray(args map[string]any, key string) []string {
	raw, ok := args[key]
	if !ok {
		return nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if str, ok := item.(string); ok {
			result = append(result, str)
		}
	}
	return result
}
