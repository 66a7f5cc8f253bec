// ABOUTME: storage.Store implementation on Charm KV for hosted persistence
// ABOUTME: Sortable timestamped keys; memory de-dup via content hash in the key
package charmkv

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/harper/companion/internal/models"
	"github.com/harper/companion/internal/storage"
)

// Key prefixes for the record tables
const (
	ProfilePrefix = "profile:"
	TurnPrefix    = "turn:"
	EmotionPrefix = "emotion:"
	MemoryPrefix  = "memory:"
)

// Store implements storage.Store on a charm KV database
type Store struct {
	client *Client
}

var _ storage.Store = (*Store)(nil)

// NewStore opens a charm-backed store with the given config
func NewStore(cfg *Config) (*Store, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Store{client: client}, nil
}

// profileKey generates the key for a user's profile
func profileKey(userID string) string {
	return ProfilePrefix + userID
}

// timelineKey generates a per-user key that sorts chronologically: the
// UnixNano timestamp is zero-padded to fixed width so lexical order is
// creation order.
func timelineKey(prefix, userID string, unixNano int64, id string) string {
	return fmt.Sprintf("%s%s:%020d:%s", prefix, userID, unixNano, id)
}

// memoryKey hashes the content so an exact duplicate lands on the same key
func memoryKey(userID, content string) string {
	sum := sha256.Sum256([]byte(content))
	return MemoryPrefix + userID + ":" + hex.EncodeToString(sum[:])
}

// GetOrCreateProfile implements storage.Store. KV has no row conflicts; the
// last concurrent creator wins, which satisfies converge-on-one-record.
func (s *Store) GetOrCreateProfile(userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.client.GetJSON(profileKey(userID), &profile)
	if err == nil {
		return &profile, nil
	}

	fresh, err := models.NewUserProfile(userID)
	if err != nil {
		return nil, err
	}
	if err := s.client.SetJSON(profileKey(userID), fresh); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return fresh, nil
}

// SaveProfile implements storage.Store
func (s *Store) SaveProfile(profile *models.UserProfile) error {
	return s.client.SetJSON(profileKey(profile.UserID), profile)
}

// SaveTurn implements storage.Store
func (s *Store) SaveTurn(turn *models.ConversationTurn) error {
	key := timelineKey(TurnPrefix, turn.UserID, turn.CreatedAt.UnixNano(), turn.TurnID)
	return s.client.SetJSON(key, turn)
}

// RecentTurns implements storage.Store
func (s *Store) RecentTurns(userID string, limit int) ([]models.ConversationTurn, error) {
	keys, err := s.recentKeys(TurnPrefix+userID+":", limit)
	if err != nil {
		return nil, err
	}

	turns := make([]models.ConversationTurn, 0, len(keys))
	for _, key := range keys {
		var turn models.ConversationTurn
		if err := s.client.GetJSON(key, &turn); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// SaveEmotion implements storage.Store
func (s *Store) SaveEmotion(entry *models.EmotionHistoryEntry) error {
	key := timelineKey(EmotionPrefix, entry.UserID, entry.CreatedAt.UnixNano(), entry.EntryID)
	return s.client.SetJSON(key, entry)
}

// RecentEmotions implements storage.Store
func (s *Store) RecentEmotions(userID string, limit int) ([]models.EmotionHistoryEntry, error) {
	keys, err := s.recentKeys(EmotionPrefix+userID+":", limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.EmotionHistoryEntry, 0, len(keys))
	for _, key := range keys {
		var entry models.EmotionHistoryEntry
		if err := s.client.GetJSON(key, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// HasMemory implements storage.Store
func (s *Store) HasMemory(userID, content string) (bool, error) {
	data, err := s.client.Get(memoryKey(userID, content))
	if err != nil {
		// kv returns an error for missing keys; treat as absent
		return false, nil
	}
	return len(data) > 0, nil
}

// SaveMemory implements storage.Store. Writing a duplicate overwrites the
// same content-hash key, so at most one record exists per (user, content).
func (s *Store) SaveMemory(mem *models.UserMemory) error {
	return s.client.SetJSON(memoryKey(mem.UserID, mem.Content), mem)
}

// TopMemories implements storage.Store
func (s *Store) TopMemories(userID string, limit int) ([]models.UserMemory, error) {
	keys, err := s.client.ListKeys(MemoryPrefix + userID + ":")
	if err != nil {
		return nil, err
	}

	memories := make([]models.UserMemory, 0, len(keys))
	for _, key := range keys {
		var mem models.UserMemory
		if err := s.client.GetJSON(key, &mem); err != nil {
			return nil, err
		}
		memories = append(memories, mem)
	}

	sortMemories(memories)
	if limit > 0 && len(memories) > limit {
		memories = memories[:limit]
	}
	return memories, nil
}

// Close implements storage.Store
func (s *Store) Close() error {
	return s.client.Close()
}

// recentKeys lists keys under prefix sorted newest first, capped at limit
func (s *Store) recentKeys(prefix string, limit int) ([]string, error) {
	keys, err := s.client.ListKeys(prefix)
	if err != nil {
		return nil, err
	}
	sortKeysNewestFirst(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

// sortKeysNewestFirst sorts timeline keys in reverse lexical order
func sortKeysNewestFirst(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		return strings.Compare(keys[i], keys[j]) > 0
	})
}

// sortMemories ranks by importance descending, then newest first
func sortMemories(memories []models.UserMemory) {
	sort.Slice(memories, func(i, j int) bool {
		if memories[i].Importance != memories[j].Importance {
			return memories[i].Importance > memories[j].Importance
		}
		return memories[i].CreatedAt.After(memories[j].CreatedAt)
	})
}
