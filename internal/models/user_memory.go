// ABOUTME: UserMemory is a short extracted statement persisted for personalization
// ABOUTME: Append-only with exact-content de-duplication per user
package models

import (
	"errors"
	"strings"
	"time"
)

// MemoryType classifies what kind of statement a memory captures
type MemoryType string

const (
	MemoryFact         MemoryType = "fact"
	MemoryPreference   MemoryType = "preference"
	MemoryEvent        MemoryType = "event"
	MemoryRelationship MemoryType = "relationship"
)

// Valid reports whether t is a known memory type
func (t MemoryType) Valid() bool {
	switch t {
	case MemoryFact, MemoryPreference, MemoryEvent, MemoryRelationship:
		return true
	}
	return false
}

// UserMemory is one extracted fact/preference/event/relationship statement.
// Ranked for display by importance descending.
type UserMemory struct {
	MemoryID     string     `json:"memory_id"`
	UserID       string     `json:"user_id"`
	Type         MemoryType `json:"memory_type"`
	Content      string     `json:"content"`
	Importance   int        `json:"importance"`
	LastAccessed time.Time  `json:"last_accessed"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewUserMemory creates a memory with a generated ID and clamped importance
func NewUserMemory(userID string, memType MemoryType, content string, importance int) (*UserMemory, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	if !memType.Valid() {
		return nil, errors.New("memory type must be fact, preference, event or relationship")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("content cannot be empty")
	}
	now := time.Now().UTC()
	return &UserMemory{
		MemoryID:     generateID("mem"),
		UserID:       userID,
		Type:         memType,
		Content:      content,
		Importance:   ClampImportance(importance),
		LastAccessed: now,
		CreatedAt:    now,
	}, nil
}

// ClampImportance clamps n into [1, 10]
func ClampImportance(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
