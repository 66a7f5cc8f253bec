// ABOUTME: Regex-based extraction of candidate memories from user utterances
// ABOUTME: Pure pattern matching; persistence and de-duplication live in Recorder
package memory

import (
	"regexp"
	"strings"

	"github.com/harper/companion/internal/models"
)

// Candidate is one extracted memory before de-duplication and persistence
type Candidate struct {
	Type       models.MemoryType
	Content    string
	Importance int
}

// pattern couples one regex with the memory type and importance it yields
type pattern struct {
	re         *regexp.Regexp
	memType    models.MemoryType
	importance int
}

// patterns is the fixed ordered list applied to every utterance. Each match
// contributes the full matched span as candidate content; patterns are
// independent, so one utterance may yield several candidates.
var patterns = []pattern{
	{regexp.MustCompile(`(?i)\bmy name is ([A-Za-z][A-Za-z'-]*)`), models.MemoryFact, 8},
	{regexp.MustCompile(`(?i)\bi (?:really )?(?:like|love|enjoy|prefer) [^.!?\n]+`), models.MemoryPreference, 6},
	{regexp.MustCompile(`(?i)\bi (?:hate|dislike|can't stand) [^.!?\n]+`), models.MemoryPreference, 6},
	{regexp.MustCompile(`(?i)\b(?:my (?:goal|dream) is|i (?:want|hope|plan) to) [^.!?\n]+`), models.MemoryEvent, 7},
	{regexp.MustCompile(`(?i)\bi work as (?:a |an )?[^.!?\n]+|\bmy job is [^.!?\n]+`), models.MemoryFact, 7},
	{regexp.MustCompile(`(?i)\bmy (?:wife|husband|partner|mom|mother|dad|father|sister|brother|son|daughter|best friend) [^.!?\n]+`), models.MemoryRelationship, 7},
}

// minNameLength rejects one- and two-letter "names" picked up from typos
const minNameLength = 3

// Extract applies the fixed pattern list to an utterance and returns zero or
// more candidate memories. Best-effort: false negatives are acceptable.
func Extract(utterance string) []Candidate {
	trimmed := strings.TrimSpace(utterance)
	if trimmed == "" {
		return nil
	}

	var candidates []Candidate
	for _, p := range patterns {
		match := p.re.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}
		// Name declarations carry the name as a capture group; skip
		// matches too short to be a real name.
		if len(match) > 1 && len(match[1]) < minNameLength {
			continue
		}
		candidates = append(candidates, Candidate{
			Type:       p.memType,
			Content:    strings.TrimSpace(match[0]),
			Importance: p.importance,
		})
	}
	return candidates
}
