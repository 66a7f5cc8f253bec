// ABOUTME: Emotion label enum and emotion history entries
// ABOUTME: Intensity values are clamped to [0, 1] before persistence
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Emotion is a coarse emotion label produced by the keyword heuristic
type Emotion string

const (
	EmotionNeutral  Emotion = "neutral"
	EmotionJoy      Emotion = "joy"
	EmotionSadness  Emotion = "sadness"
	EmotionAnger    Emotion = "anger"
	EmotionFear     Emotion = "fear"
	EmotionSurprise Emotion = "surprise"
)

// Valid reports whether e is a known emotion label
func (e Emotion) Valid() bool {
	switch e {
	case EmotionNeutral, EmotionJoy, EmotionSadness, EmotionAnger, EmotionFear, EmotionSurprise:
		return true
	}
	return false
}

// EmotionHistoryEntry records one non-neutral detection for a user
type EmotionHistoryEntry struct {
	EntryID      string    `json:"entry_id"`
	UserID       string    `json:"user_id"`
	Emotion      Emotion   `json:"emotion"`
	Intensity    float64   `json:"intensity"`
	TriggerText  string    `json:"trigger_text"`
	ResponseText string    `json:"response_text,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewEmotionHistoryEntry creates an entry with a generated ID and clamped intensity
func NewEmotionHistoryEntry(userID string, emotion Emotion, intensity float64, trigger string) (*EmotionHistoryEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if !emotion.Valid() {
		return nil, fmt.Errorf("unknown emotion %q", emotion)
	}
	return &EmotionHistoryEntry{
		EntryID:     generateID("emo"),
		UserID:      userID,
		Emotion:     emotion,
		Intensity:   ClampUnit(intensity),
		TriggerText: trigger,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// ClampUnit clamps v into [0, 1]
func ClampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// generateID generates a short prefixed identifier
func generateID(prefix string) string {
	return fmt.Sprintf("%s_%s_%s", prefix, time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
