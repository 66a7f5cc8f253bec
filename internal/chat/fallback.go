// ABOUTME: Canned fallback replies for the non-streaming path
// ABOUTME: One empathetic reply per detected emotion, plus a neutral default
package chat

import "github.com/harper/companion/internal/models"

// fallbackReplies keeps the UI renderable when the backend is unreachable
var fallbackReplies = map[models.Emotion]string{
	models.EmotionJoy:      "I'm so glad to hear you're feeling happy! What's bringing you joy today?",
	models.EmotionSadness:  "I understand you're feeling sad. I'm here to listen and support you.",
	models.EmotionAnger:    "I can tell you're frustrated. Take a deep breath. I'm here to help.",
	models.EmotionFear:     "It's natural to feel scared sometimes. You're safe here with me.",
	models.EmotionSurprise: "That sounds like quite a surprise! Tell me more about what happened.",
	models.EmotionNeutral:  "I'm here to chat with you. What's on your mind?",
}

// fallbackReply returns the canned message for an emotion
func fallbackReply(detected models.Emotion) string {
	if reply, ok := fallbackReplies[detected]; ok {
		return reply
	}
	return fallbackReplies[models.EmotionNeutral]
}
