// ABOUTME: Unified Storage layer that wraps all SQLite stores
// ABOUTME: Implements the storage.Store contract over a local database
package sqlite

import (
	"fmt"

	"github.com/harper/companion/internal/models"
	"github.com/harper/companion/internal/storage"
)

// Storage manages all persistent companion data using SQLite
type Storage struct {
	db       *DB
	profiles *ProfileStore
	turns    *TurnStore
	emotions *EmotionStore
	memories *MemoryStore
}

// compile-time contract check
var _ storage.Store = (*Storage)(nil)

// NewStorage initializes storage at the default XDG path
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db), nil
}

// NewStorageInMemory initializes an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, err
	}
	return newStorage(db), nil
}

func newStorage(db *DB) *Storage {
	return &Storage{
		db:       db,
		profiles: NewProfileStore(db),
		turns:    NewTurnStore(db),
		emotions: NewEmotionStore(db),
		memories: NewMemoryStore(db),
	}
}

// GetOrCreateProfile implements storage.Store
func (s *Storage) GetOrCreateProfile(userID string) (*models.UserProfile, error) {
	return s.profiles.GetOrCreate(userID)
}

// SaveProfile implements storage.Store
func (s *Storage) SaveProfile(profile *models.UserProfile) error {
	return s.profiles.Save(profile)
}

// SaveTurn implements storage.Store
func (s *Storage) SaveTurn(turn *models.ConversationTurn) error {
	return s.turns.Save(turn)
}

// RecentTurns implements storage.Store
func (s *Storage) RecentTurns(userID string, limit int) ([]models.ConversationTurn, error) {
	return s.turns.Recent(userID, limit)
}

// SaveEmotion implements storage.Store
func (s *Storage) SaveEmotion(entry *models.EmotionHistoryEntry) error {
	return s.emotions.Save(entry)
}

// RecentEmotions implements storage.Store
func (s *Storage) RecentEmotions(userID string, limit int) ([]models.EmotionHistoryEntry, error) {
	return s.emotions.Recent(userID, limit)
}

// HasMemory implements storage.Store
func (s *Storage) HasMemory(userID, content string) (bool, error) {
	return s.memories.Has(userID, content)
}

// SaveMemory implements storage.Store
func (s *Storage) SaveMemory(mem *models.UserMemory) error {
	return s.memories.Save(mem)
}

// TopMemories implements storage.Store
func (s *Storage) TopMemories(userID string, limit int) ([]models.UserMemory, error) {
	return s.memories.Top(userID, limit)
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}
