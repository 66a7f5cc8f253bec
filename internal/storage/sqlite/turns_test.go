// ABOUTME: Tests for conversation turn storage
// ABOUTME: Verifies append, newest-first ordering, and per-user scoping

package sqlite

import (
	"fmt"
	"testing"
	"time"

	"github.com/harper/companion/internal/models"
)

func saveTurnAt(t *testing.T, store *TurnStore, userID, content string, at time.Time) {
	t.Helper()
	turn := &models.ConversationTurn{
		TurnID:    fmt.Sprintf("turn_%s_%d", content, at.UnixNano()),
		UserID:    userID,
		Role:      models.RoleUser,
		Content:   content,
		Emotion:   models.EmotionNeutral,
		CreatedAt: at,
	}
	if err := store.Save(turn); err != nil {
		t.Fatalf("Save(%q) error = %v", content, err)
	}
}

func TestTurnStore_RecentNewestFirst(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewTurnStore(db)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	saveTurnAt(t, store, "user-1", "first", base)
	saveTurnAt(t, store, "user-1", "second", base.Add(time.Minute))
	saveTurnAt(t, store, "user-1", "third", base.Add(2*time.Minute))

	turns, err := store.Recent("user-1", 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("len(turns) = %d, want 2", len(turns))
	}
	if turns[0].Content != "third" || turns[1].Content != "second" {
		t.Errorf("Recent() order = [%s, %s], want [third, second]", turns[0].Content, turns[1].Content)
	}
}

func TestTurnStore_RecentScopedToUser(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewTurnStore(db)
	now := time.Now().UTC()

	saveTurnAt(t, store, "user-1", "mine", now)
	saveTurnAt(t, store, "user-2", "theirs", now)

	turns, err := store.Recent("user-1", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(turns) != 1 || turns[0].Content != "mine" {
		t.Errorf("Recent(user-1) = %v, want only user-1 turns", turns)
	}
}

func TestTurnStore_SavePreservesEmotionTag(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewTurnStore(db)

	turn, err := models.NewConversationTurn("user-1", models.RoleUser, "I'm thrilled!", models.EmotionJoy, 0.4)
	if err != nil {
		t.Fatalf("NewConversationTurn() error = %v", err)
	}
	if err := store.Save(turn); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	turns, err := store.Recent("user-1", 1)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("len(turns) = %d, want 1", len(turns))
	}
	if turns[0].Emotion != models.EmotionJoy {
		t.Errorf("Emotion = %q, want joy", turns[0].Emotion)
	}
	if turns[0].EmotionConfidence != 0.4 {
		t.Errorf("EmotionConfidence = %v, want 0.4", turns[0].EmotionConfidence)
	}
}
