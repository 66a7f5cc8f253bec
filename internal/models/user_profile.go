// ABOUTME: UserProfile represents identity, traits and preferences for one user
// ABOUTME: Created lazily on first load, keyed by an injected user id
package models

import (
	"errors"
	"time"
)

// CommunicationStyle controls the assistant's tone for a user
type CommunicationStyle string

const (
	StyleCasual       CommunicationStyle = "casual"
	StyleProfessional CommunicationStyle = "professional"
	StyleEmpathetic   CommunicationStyle = "empathetic"
	StyleBalanced     CommunicationStyle = "balanced"
)

// Valid reports whether s is a known communication style
func (s CommunicationStyle) Valid() bool {
	switch s {
	case StyleCasual, StyleProfessional, StyleEmpathetic, StyleBalanced:
		return true
	}
	return false
}

// UserProfile holds user context and personalization data
type UserProfile struct {
	UserID             string             `json:"user_id"`
	DisplayName        string             `json:"display_name,omitempty"`
	PersonalityTraits  map[string]string  `json:"personality_traits,omitempty"`
	Preferences        map[string]string  `json:"preferences,omitempty"`
	Goals              []string           `json:"goals,omitempty"`
	Challenges         []string           `json:"challenges,omitempty"`
	CommunicationStyle CommunicationStyle `json:"communication_style"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// NewUserProfile creates a profile with defaults for lazy first-load creation
func NewUserProfile(userID string) (*UserProfile, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	now := time.Now().UTC()
	return &UserProfile{
		UserID:             userID,
		PersonalityTraits:  map[string]string{},
		Preferences:        map[string]string{},
		CommunicationStyle: StyleBalanced,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// SetTrait records or replaces a personality trait
func (p *UserProfile) SetTrait(key, value string) {
	if p.PersonalityTraits == nil {
		p.PersonalityTraits = map[string]string{}
	}
	p.PersonalityTraits[key] = value
	p.UpdatedAt = time.Now().UTC()
}

// SetPreference records or replaces a preference
func (p *UserProfile) SetPreference(key, value string) {
	if p.Preferences == nil {
		p.Preferences = map[string]string{}
	}
	p.Preferences[key] = value
	p.UpdatedAt = time.Now().UTC()
}

// AddGoal appends a goal without duplicates
func (p *UserProfile) AddGoal(goal string) {
	if goal == "" || containsString(p.Goals, goal) {
		return
	}
	p.Goals = append(p.Goals, goal)
	p.UpdatedAt = time.Now().UTC()
}

// AddChallenge appends a challenge without duplicates
func (p *UserProfile) AddChallenge(challenge string) {
	if challenge == "" || containsString(p.Challenges, challenge) {
		return
	}
	p.Challenges = append(p.Challenges, challenge)
	p.UpdatedAt = time.Now().UTC()
}

// SetCommunicationStyle updates the style, rejecting unknown values
func (p *UserProfile) SetCommunicationStyle(style CommunicationStyle) error {
	if !style.Valid() {
		return errors.New("communication style must be casual, professional, empathetic or balanced")
	}
	p.CommunicationStyle = style
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// containsString checks if a string slice contains a specific string
func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
