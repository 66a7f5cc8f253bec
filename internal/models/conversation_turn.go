// ABOUTME: ConversationTurn represents a single persisted chat message
// ABOUTME: Turns are append-only and ordered by creation timestamp
package models

import (
	"errors"
	"strings"
	"time"
)

// Role identifies which side of the conversation produced a turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message in a conversation. Assistant turns carry
// a neutral emotion with zero confidence; only user turns are emotion-tagged.
type ConversationTurn struct {
	TurnID            string    `json:"turn_id"`
	UserID            string    `json:"user_id"`
	Role              Role      `json:"role"`
	Content           string    `json:"content"`
	Emotion           Emotion   `json:"emotion"`
	EmotionConfidence float64   `json:"emotion_confidence"`
	Context           string    `json:"context,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewConversationTurn creates a turn with validation and a generated ID
func NewConversationTurn(userID string, role Role, content string, emotion Emotion, confidence float64) (*ConversationTurn, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	if role != RoleUser && role != RoleAssistant {
		return nil, errors.New("role must be user or assistant")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("content cannot be empty")
	}
	if emotion == "" {
		emotion = EmotionNeutral
	}
	return &ConversationTurn{
		TurnID:            generateID("turn"),
		UserID:            userID,
		Role:              role,
		Content:           content,
		Emotion:           emotion,
		EmotionConfidence: ClampUnit(confidence),
		CreatedAt:         time.Now().UTC(),
	}, nil
}
