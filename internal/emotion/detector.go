// ABOUTME: Keyword-matching emotion heuristic for user messages
// ABOUTME: Pure and deterministic; confidence is a boosted score, not a probability
package emotion

import (
	"strings"

	"github.com/harper/companion/internal/models"
)

// triggerSet maps one emotion label to its trigger keywords. Sets are
// evaluated in slice order, so score ties resolve to the earliest label.
type triggerSet struct {
	emotion  models.Emotion
	keywords []string
}

// triggerSets is the fixed keyword table. Keywords must be lower case.
var triggerSets = []triggerSet{
	{models.EmotionJoy, []string{
		"happy", "glad", "joy", "excited", "awesome", "great", "wonderful",
		"amazing", "fantastic", "love", "delighted", "thrilled", "😊", "😄", "🎉",
	}},
	{models.EmotionSadness, []string{
		"sad", "unhappy", "depressed", "down", "miserable", "crying",
		"lonely", "heartbroken", "hopeless", "grief", "😢", "😞",
	}},
	{models.EmotionAnger, []string{
		"angry", "mad", "furious", "annoyed", "frustrated", "hate",
		"irritated", "outraged", "fed up", "😠", "😡",
	}},
	{models.EmotionFear, []string{
		"afraid", "scared", "anxious", "worried", "nervous", "terrified",
		"panic", "frightened", "dread", "😨", "😰",
	}},
	{models.EmotionSurprise, []string{
		"surprised", "shocked", "unexpected", "unbelievable", "wow",
		"astonished", "stunned", "no way", "😲", "😮",
	}},
}

// Detect classifies text into an emotion label with a confidence in [0, 1].
//
// Each emotion scores the fraction of its trigger keywords present in the
// lower-cased text. The highest score wins; with no match the result is
// (neutral, 0). The returned confidence is min(maxScore*2, 1) — the doubling
// boosts sensitivity for short messages, so callers must not treat it as a
// true probability.
func Detect(text string) (models.Emotion, float64) {
	lower := strings.ToLower(text)

	best := models.EmotionNeutral
	bestScore := 0.0

	for _, set := range triggerSets {
		matched := 0
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				matched++
			}
		}
		score := float64(matched) / float64(len(set.keywords))
		// Strictly-greater keeps the earliest label on ties.
		if score > bestScore {
			bestScore = score
			best = set.emotion
		}
	}

	if bestScore == 0 {
		return models.EmotionNeutral, 0
	}
	return best, models.ClampUnit(bestScore * 2)
}
