// ABOUTME: User memory storage operations for SQLite
// ABOUTME: Exact-content de-duplication per user, ranked reads by importance
package sqlite

import (
	"github.com/harper/companion/internal/models"
)

// MemoryStore handles extracted memory persistence
type MemoryStore struct {
	db *DB
}

// NewMemoryStore creates a new MemoryStore
func NewMemoryStore(db *DB) *MemoryStore {
	return &MemoryStore{db: db}
}

// Has reports whether a memory with exactly this content exists for userID
func (s *MemoryStore) Has(userID, content string) (bool, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(1) FROM user_memory
		WHERE user_id = ? AND content = ?
	`, userID, content).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save appends a memory record. A concurrent duplicate insert is absorbed by
// the (user_id, content) unique constraint rather than surfaced as an error.
func (s *MemoryStore) Save(mem *models.UserMemory) error {
	_, err := s.db.Exec(`
		INSERT INTO user_memory (id, user_id, memory_type, content, importance, last_accessed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, content) DO NOTHING
	`, mem.MemoryID, mem.UserID, mem.Type, mem.Content, mem.Importance,
		mem.LastAccessed, mem.CreatedAt)
	return err
}

// Top returns up to limit memories for userID ranked by importance descending
func (s *MemoryStore) Top(userID string, limit int) ([]models.UserMemory, error) {
	rows, err := s.db.Query(`
		SELECT id, memory_type, content, importance, last_accessed, created_at
		FROM user_memory
		WHERE user_id = ?
		ORDER BY importance DESC, created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var memories []models.UserMemory
	for rows.Next() {
		var mem models.UserMemory
		err := rows.Scan(&mem.MemoryID, &mem.Type, &mem.Content, &mem.Importance,
			&mem.LastAccessed, &mem.CreatedAt)
		if err != nil {
			return nil, err
		}
		mem.UserID = userID
		memories = append(memories, mem)
	}
	return memories, rows.Err()
}
