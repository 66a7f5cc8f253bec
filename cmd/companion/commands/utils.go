// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Store opening, chat client construction, and display helpers
package commands

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/harper/companion/internal/chat"
	"github.com/harper/companion/internal/config"
	"github.com/harper/companion/internal/models"
	"github.com/harper/companion/internal/storage"
	"github.com/harper/companion/internal/storage/charmkv"
	"github.com/harper/companion/internal/storage/sqlite"
)

// loadConfig loads .env then the environment configuration, applying the
// --user flag override
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if userIDFlag != "" {
		cfg.UserID = userIDFlag
	}
	if cfg.UserID == "" {
		return nil, fmt.Errorf("no user id: set COMPANION_USER_ID or pass --user")
	}
	return cfg, nil
}

// openStore opens the record store selected by the configuration
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreCharm:
		return charmkv.NewStore(&charmkv.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.AutoSync,
		})
	default:
		if cfg.DBPath != "" {
			return sqlite.NewStorageWithPath(cfg.DBPath)
		}
		return sqlite.NewStorage()
	}
}

// newChatClient builds a chat client from the configuration and store
func newChatClient(cfg *config.Config, store storage.Store) (*chat.Client, error) {
	return chat.New(chat.Options{
		BaseURL:          cfg.APIURL,
		UserID:           cfg.UserID,
		ConversationID:   cfg.ConversationID,
		Timeout:          cfg.Timeout,
		EmotionThreshold: cfg.EmotionThreshold,
		ContextTurns:     cfg.ContextTurns,
	}, store)
}

// emotionIndicator maps an emotion to a display glyph
func emotionIndicator(e models.Emotion) string {
	switch e {
	case models.EmotionJoy:
		return "😊"
	case models.EmotionSadness:
		return "😢"
	case models.EmotionAnger:
		return "😠"
	case models.EmotionFear:
		return "😨"
	case models.EmotionSurprise:
		return "😲"
	default:
		return "·"
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}
