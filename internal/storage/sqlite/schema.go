// ABOUTME: SQLite database schema for companion storage
// ABOUTME: Creates all tables and indexes for profiles, turns, emotions, memories
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- User profiles, unique per user id
CREATE TABLE IF NOT EXISTS user_profiles (
    user_id TEXT PRIMARY KEY,
    display_name TEXT,
    personality_traits TEXT,
    preferences TEXT,
    goals TEXT,
    challenges TEXT,
    communication_style TEXT DEFAULT 'balanced',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Conversation turns, append-only
CREATE TABLE IF NOT EXISTS conversations (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    emotion TEXT DEFAULT 'neutral',
    emotion_confidence REAL DEFAULT 0,
    context TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Emotion history, append-only, non-neutral detections only
CREATE TABLE IF NOT EXISTS emotion_history (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    emotion TEXT NOT NULL,
    intensity REAL DEFAULT 0,
    trigger_text TEXT,
    response_text TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Extracted memories, de-duplicated on (user_id, content)
CREATE TABLE IF NOT EXISTS user_memory (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    memory_type TEXT NOT NULL,
    content TEXT NOT NULL,
    importance INTEGER DEFAULT 5,
    last_accessed DATETIME DEFAULT CURRENT_TIMESTAMP,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(user_id, content)
);

-- Indexes for efficient per-user querying
CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_emotion_history_user ON emotion_history(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_user_memory_user ON user_memory(user_id, importance);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
