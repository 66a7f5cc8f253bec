// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.APIURL != "http://localhost:8000" {
		t.Errorf("APIURL = %s, want http://localhost:8000", cfg.APIURL)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.UserID != "" {
		t.Errorf("UserID = %s, want empty", cfg.UserID)
	}
	if cfg.StoreBackend != StoreSQLite {
		t.Errorf("StoreBackend = %s, want sqlite", cfg.StoreBackend)
	}
	if cfg.CharmHost != "cloud.charm.sh" {
		t.Errorf("CharmHost = %s, want cloud.charm.sh", cfg.CharmHost)
	}
	if cfg.CharmDBName != "companion" {
		t.Errorf("CharmDBName = %s, want companion", cfg.CharmDBName)
	}
	if !cfg.AutoSync {
		t.Error("AutoSync = false, want true")
	}
	if cfg.EmotionThreshold != 0.3 {
		t.Errorf("EmotionThreshold = %f, want 0.3", cfg.EmotionThreshold)
	}
	if cfg.ContextTurns != 10 {
		t.Errorf("ContextTurns = %d, want 10", cfg.ContextTurns)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	// Set custom environment variables
	os.Clearenv()
	os.Setenv("COMPANION_API_URL", "http://api.example.com:9000")
	os.Setenv("COMPANION_TIMEOUT", "30s")
	os.Setenv("COMPANION_USER_ID", "alex")
	os.Setenv("COMPANION_CONVERSATION_ID", "conv-1")
	os.Setenv("COMPANION_STORE", "charm")
	os.Setenv("CHARM_HOST", "custom.charm.sh")
	os.Setenv("CHARM_DB", "test_db")
	os.Setenv("CHARM_AUTO_SYNC", "false")
	os.Setenv("COMPANION_EMOTION_THRESHOLD", "0.5")
	os.Setenv("COMPANION_CONTEXT_TURNS", "20")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify custom values
	if cfg.APIURL != "http://api.example.com:9000" {
		t.Errorf("APIURL = %s, want http://api.example.com:9000", cfg.APIURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.UserID != "alex" {
		t.Errorf("UserID = %s, want alex", cfg.UserID)
	}
	if cfg.ConversationID != "conv-1" {
		t.Errorf("ConversationID = %s, want conv-1", cfg.ConversationID)
	}
	if cfg.StoreBackend != StoreCharm {
		t.Errorf("StoreBackend = %s, want charm", cfg.StoreBackend)
	}
	if cfg.CharmHost != "custom.charm.sh" {
		t.Errorf("CharmHost = %s, want custom.charm.sh", cfg.CharmHost)
	}
	if cfg.CharmDBName != "test_db" {
		t.Errorf("CharmDBName = %s, want test_db", cfg.CharmDBName)
	}
	if cfg.AutoSync {
		t.Error("AutoSync = true, want false")
	}
	if cfg.EmotionThreshold != 0.5 {
		t.Errorf("EmotionThreshold = %f, want 0.5", cfg.EmotionThreshold)
	}
	if cfg.ContextTurns != 20 {
		t.Errorf("ContextTurns = %d, want 20", cfg.ContextTurns)
	}
}

func TestValidate_InvalidStoreBackend(t *testing.T) {
	cfg := &Config{
		StoreBackend:     "redis",
		EmotionThreshold: 0.3,
		ContextTurns:     10,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for unknown store backend")
	}
}

func TestValidate_InvalidThreshold(t *testing.T) {
	cfg := &Config{
		StoreBackend:     StoreSQLite,
		EmotionThreshold: 1.5,
		ContextTurns:     10,
	}

	err := cfg.Validate()
	if err == nil {
		t.Error("Validate() should fail for threshold > 1")
	}

	cfg.EmotionThreshold = -0.1
	err = cfg.Validate()
	if err == nil {
		t.Error("Validate() should fail for threshold < 0")
	}
}

func TestValidate_InvalidContextTurns(t *testing.T) {
	cfg := &Config{
		StoreBackend:     StoreSQLite,
		EmotionThreshold: 0.3,
		ContextTurns:     0,
	}

	err := cfg.Validate()
	if err == nil {
		t.Error("Validate() should fail for ContextTurns < 1")
	}

	cfg.ContextTurns = 500
	err = cfg.Validate()
	if err == nil {
		t.Error("Validate() should fail for ContextTurns > 100")
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		defaultVal bool
		want       bool
	}{
		{"empty uses default true", "", true, true},
		{"empty uses default false", "", false, false},
		{"true", "true", false, true},
		{"1", "1", false, true},
		{"false", "false", true, false},
		{"0", "0", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if tt.value != "" {
				os.Setenv("TEST_BOOL", tt.value)
			}
			got := getEnvBool("TEST_BOOL", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}
