// ABOUTME: Centralized configuration for the companion client
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backends selectable via COMPANION_STORE
const (
	StoreSQLite = "sqlite"
	StoreCharm  = "charm"
)

// Config holds all configuration for the companion client
type Config struct {
	// Backend settings
	APIURL  string
	Timeout time.Duration

	// Identity settings
	UserID         string
	ConversationID string

	// Store settings
	StoreBackend string
	DBPath       string
	CharmHost    string
	CharmDBName  string
	AutoSync     bool

	// Emotion settings
	EmotionThreshold float64
	ContextTurns     int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		APIURL:           getEnv("COMPANION_API_URL", "http://localhost:8000"),
		Timeout:          getEnvDuration("COMPANION_TIMEOUT", 60*time.Second),
		UserID:           os.Getenv("COMPANION_USER_ID"),
		ConversationID:   os.Getenv("COMPANION_CONVERSATION_ID"),
		StoreBackend:     getEnv("COMPANION_STORE", StoreSQLite),
		DBPath:           os.Getenv("COMPANION_DB_PATH"),
		CharmHost:        getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:      getEnv("CHARM_DB", "companion"),
		AutoSync:         getEnvBool("CHARM_AUTO_SYNC", true),
		EmotionThreshold: getEnvFloat("COMPANION_EMOTION_THRESHOLD", 0.3),
		ContextTurns:     getEnvInt("COMPANION_CONTEXT_TURNS", 10),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.StoreBackend != StoreSQLite && c.StoreBackend != StoreCharm {
		return fmt.Errorf("COMPANION_STORE must be %q or %q, got %q", StoreSQLite, StoreCharm, c.StoreBackend)
	}
	if c.EmotionThreshold < 0 || c.EmotionThreshold > 1 {
		return fmt.Errorf("COMPANION_EMOTION_THRESHOLD must be 0-1, got %f", c.EmotionThreshold)
	}
	if c.ContextTurns < 1 || c.ContextTurns > 100 {
		return fmt.Errorf("COMPANION_CONTEXT_TURNS must be 1-100, got %d", c.ContextTurns)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
