// ABOUTME: Conversation turn storage operations for SQLite
// ABOUTME: Append-only writes with newest-first reads per user
package sqlite

import (
	"database/sql"
	"time"

	"github.com/harper/companion/internal/models"
)

// TurnStore handles conversation turn persistence
type TurnStore struct {
	db *DB
}

// NewTurnStore creates a new TurnStore
func NewTurnStore(db *DB) *TurnStore {
	return &TurnStore{db: db}
}

// Save appends a conversation turn
func (s *TurnStore) Save(turn *models.ConversationTurn) error {
	_, err := s.db.Exec(`
		INSERT INTO conversations (id, user_id, role, content, emotion, emotion_confidence, context, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, turn.TurnID, turn.UserID, turn.Role, turn.Content, turn.Emotion,
		turn.EmotionConfidence, turn.Context, turn.CreatedAt)
	return err
}

// Recent returns up to limit turns for userID ordered newest first
func (s *TurnStore) Recent(userID string, limit int) ([]models.ConversationTurn, error) {
	rows, err := s.db.Query(`
		SELECT id, role, content, emotion, emotion_confidence, context, created_at
		FROM conversations
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var turns []models.ConversationTurn
	for rows.Next() {
		var (
			turn       models.ConversationTurn
			contextCol sql.NullString
			createdAt  time.Time
		)
		err := rows.Scan(&turn.TurnID, &turn.Role, &turn.Content, &turn.Emotion,
			&turn.EmotionConfidence, &contextCol, &createdAt)
		if err != nil {
			return nil, err
		}
		turn.UserID = userID
		turn.CreatedAt = createdAt
		if contextCol.Valid {
			turn.Context = contextCol.String
		}
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}
