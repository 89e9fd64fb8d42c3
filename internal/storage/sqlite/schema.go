// ABOUTME: SQLite schema for conversation memory storage
// ABOUTME: Three tables: conversations, user_preferences, session_contexts
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Conversation turns (append-only)
CREATE TABLE IF NOT EXISTS conversations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp DATETIME NOT NULL,
    session_id TEXT NOT NULL,
    user_input TEXT NOT NULL,
    ai_response TEXT NOT NULL,
    emotion_detected TEXT NOT NULL DEFAULT 'neutral',
    context_summary TEXT NOT NULL DEFAULT '',
    importance_score REAL NOT NULL DEFAULT 0.5
);

-- User preferences, unique per (type, key)
CREATE TABLE IF NOT EXISTS user_preferences (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    preference_type TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    confidence REAL NOT NULL DEFAULT 1.0,
    last_updated DATETIME NOT NULL,
    usage_count INTEGER NOT NULL DEFAULT 1,
    UNIQUE(preference_type, key)
);

-- Session contexts, one row per session
CREATE TABLE IF NOT EXISTS session_contexts (
    session_id TEXT PRIMARY KEY,
    start_time DATETIME NOT NULL,
    last_activity DATETIME NOT NULL,
    topic_keywords TEXT NOT NULL DEFAULT '[]',
    emotional_trend TEXT NOT NULL DEFAULT '[]',
    user_mood TEXT NOT NULL DEFAULT 'neutral',
    conversation_summary TEXT NOT NULL DEFAULT '',
    active INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_conversations_session ON conversations(session_id);
CREATE INDEX IF NOT EXISTS idx_conversations_timestamp ON conversations(timestamp);
CREATE INDEX IF NOT EXISTS idx_preferences_type ON user_preferences(preference_type);
CREATE INDEX IF NOT EXISTS idx_sessions_active ON session_contexts(active);
`
