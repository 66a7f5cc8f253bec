// ABOUTME: Store is the record-store contract consumed by the chat clients
// ABOUTME: Implemented by the sqlite (local) and charmkv (hosted) backends
package storage

import "github.com/harper/companion/internal/models"

// Store abstracts the persistent record store. Every query is scoped to a
// user id; ordering is by creation timestamp. Writes are append-only except
// profile upserts and memory de-duplication.
type Store interface {
	// GetOrCreateProfile loads the profile for userID, creating a default
	// one on first access. Concurrent creators must converge on one row
	// (conflict-on-user-id semantics).
	GetOrCreateProfile(userID string) (*models.UserProfile, error)
	// SaveProfile persists profile mutations
	SaveProfile(profile *models.UserProfile) error

	// SaveTurn appends a conversation turn
	SaveTurn(turn *models.ConversationTurn) error
	// RecentTurns returns up to limit turns for userID, newest first
	RecentTurns(userID string, limit int) ([]models.ConversationTurn, error)

	// SaveEmotion appends an emotion history entry
	SaveEmotion(entry *models.EmotionHistoryEntry) error
	// RecentEmotions returns up to limit entries for userID, newest first
	RecentEmotions(userID string, limit int) ([]models.EmotionHistoryEntry, error)

	// HasMemory reports whether a memory with exactly this content already
	// exists for userID
	HasMemory(userID, content string) (bool, error)
	// SaveMemory appends a memory record
	SaveMemory(mem *models.UserMemory) error
	// TopMemories returns up to limit memories for userID ranked by
	// importance descending
	TopMemories(userID string, limit int) ([]models.UserMemory, error)

	// Close releases the underlying store
	Close() error
}
