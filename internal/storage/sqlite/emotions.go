// ABOUTME: Emotion history storage operations for SQLite
// ABOUTME: Append-only entries for non-neutral detections
package sqlite

import (
	"database/sql"

	"github.com/harper/companion/internal/models"
)

// EmotionStore handles emotion history persistence
type EmotionStore struct {
	db *DB
}

// NewEmotionStore creates a new EmotionStore
func NewEmotionStore(db *DB) *EmotionStore {
	return &EmotionStore{db: db}
}

// Save appends an emotion history entry
func (s *EmotionStore) Save(entry *models.EmotionHistoryEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO emotion_history (id, user_id, emotion, intensity, trigger_text, response_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.EntryID, entry.UserID, entry.Emotion, entry.Intensity,
		entry.TriggerText, entry.ResponseText, entry.CreatedAt)
	return err
}

// Recent returns up to limit entries for userID ordered newest first
func (s *EmotionStore) Recent(userID string, limit int) ([]models.EmotionHistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, emotion, intensity, trigger_text, response_text, created_at
		FROM emotion_history
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []models.EmotionHistoryEntry
	for rows.Next() {
		var (
			entry       models.EmotionHistoryEntry
			triggerCol  sql.NullString
			responseCol sql.NullString
		)
		err := rows.Scan(&entry.EntryID, &entry.Emotion, &entry.Intensity,
			&triggerCol, &responseCol, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		entry.UserID = userID
		if triggerCol.Valid {
			entry.TriggerText = triggerCol.String
		}
		if responseCol.Valid {
			entry.ResponseText = responseCol.String
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
