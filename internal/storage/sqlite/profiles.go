// ABOUTME: User profile storage operations for SQLite
// ABOUTME: Implements upsert-on-user-id with JSON map/array serialization
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/companion/internal/models"
)

// ProfileStore handles user profile persistence
type ProfileStore struct {
	db *DB
}

// NewProfileStore creates a new ProfileStore
func NewProfileStore(db *DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// GetOrCreate loads the profile for userID, inserting a default row on first
// access. The insert ignores a conflict on user_id so two concurrent
// creators converge on a single row.
func (s *ProfileStore) GetOrCreate(userID string) (*models.UserProfile, error) {
	profile, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	fresh, err := models.NewUserProfile(userID)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`
		INSERT INTO user_profiles (user_id, display_name, personality_traits, preferences, goals, challenges, communication_style, created_at, updated_at)
		VALUES (?, ?, '{}', '{}', '[]', '[]', ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`, fresh.UserID, fresh.DisplayName, fresh.CommunicationStyle, fresh.CreatedAt, fresh.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	// Re-read so a lost race still returns the winning row
	profile, err = s.get(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile for %s missing after upsert", userID)
	}
	return profile, nil
}

// Save updates an existing profile (upsert)
func (s *ProfileStore) Save(profile *models.UserProfile) error {
	traitsJSON, err := json.Marshal(profile.PersonalityTraits)
	if err != nil {
		return err
	}
	prefsJSON, err := json.Marshal(profile.Preferences)
	if err != nil {
		return err
	}
	goalsJSON, err := json.Marshal(profile.Goals)
	if err != nil {
		return err
	}
	challengesJSON, err := json.Marshal(profile.Challenges)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO user_profiles (user_id, display_name, personality_traits, preferences, goals, challenges, communication_style, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			display_name = excluded.display_name,
			personality_traits = excluded.personality_traits,
			preferences = excluded.preferences,
			goals = excluded.goals,
			challenges = excluded.challenges,
			communication_style = excluded.communication_style,
			updated_at = excluded.updated_at
	`, profile.UserID, profile.DisplayName, string(traitsJSON), string(prefsJSON),
		string(goalsJSON), string(challengesJSON), profile.CommunicationStyle,
		profile.CreatedAt, time.Now().UTC())

	return err
}

// get retrieves the profile for userID, returning nil if not found
func (s *ProfileStore) get(userID string) (*models.UserProfile, error) {
	var (
		displayName    sql.NullString
		traitsJSON     sql.NullString
		prefsJSON      sql.NullString
		goalsJSON      sql.NullString
		challengesJSON sql.NullString
		style          string
		createdAt      time.Time
		updatedAt      time.Time
	)

	err := s.db.QueryRow(`
		SELECT display_name, personality_traits, preferences, goals, challenges, communication_style, created_at, updated_at
		FROM user_profiles
		WHERE user_id = ?
	`, userID).Scan(&displayName, &traitsJSON, &prefsJSON, &goalsJSON, &challengesJSON, &style, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		UserID:             userID,
		CommunicationStyle: models.CommunicationStyle(style),
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}
	if displayName.Valid {
		profile.DisplayName = displayName.String
	}
	profile.PersonalityTraits = unmarshalStringMap(traitsJSON)
	profile.Preferences = unmarshalStringMap(prefsJSON)
	profile.Goals = unmarshalStringSlice(goalsJSON)
	profile.Challenges = unmarshalStringSlice(challengesJSON)

	return profile, nil
}

// unmarshalStringMap decodes a nullable JSON object column, tolerating garbage
func unmarshalStringMap(col sql.NullString) map[string]string {
	out := map[string]string{}
	if col.Valid && col.String != "" {
		if err := json.Unmarshal([]byte(col.String), &out); err != nil {
			return map[string]string{}
		}
	}
	return out
}

// unmarshalStringSlice decodes a nullable JSON array column, tolerating garbage
func unmarshalStringSlice(col sql.NullString) []string {
	if !col.Valid || col.String == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(col.String), &out); err != nil {
		return nil
	}
	return out
}
