// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, databaseType string) error {
	schema := sqliteSchema
	if databaseType == "postgres" {
		schema = postgresSchema
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const sqliteSchema = `
-- Suggestions (joined to polls by poll_id)
CREATE TABLE IF NOT EXISTS suggestions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    username TEXT NOT NULL,
    artist_name TEXT NOT NULL,
    album_name TEXT NOT NULL,
    links TEXT NOT NULL,
    notes TEXT,
    internal BOOLEAN NOT NULL,
    approved BOOLEAN NOT NULL DEFAULT FALSE,
    poll_id INTEGER NOT NULL,
    timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_suggestions_poll_id ON suggestions(poll_id);
CREATE INDEX IF NOT EXISTS idx_suggestions_approved ON suggestions(internal, approved);

-- Polls (status codes: 0 pending, 1 completed, 2 revoked, 3 vetoed;
-- votes is a comma-joined voter-ID list, only set while pending)
CREATE TABLE IF NOT EXISTS polls (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    message_id TEXT NOT NULL,
    author_id TEXT NOT NULL,
    internal BOOLEAN NOT NULL,
    status INTEGER NOT NULL DEFAULT 0,
    votes TEXT
);

CREATE INDEX IF NOT EXISTS idx_polls_message_id ON polls(message_id);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS suggestions (
    id BIGSERIAL PRIMARY KEY,
    user_id TEXT NOT NULL,
    username TEXT NOT NULL,
    artist_name TEXT NOT NULL,
    album_name TEXT NOT NULL,
    links TEXT NOT NULL,
    notes TEXT,
    internal BOOLEAN NOT NULL,
    approved BOOLEAN NOT NULL DEFAULT FALSE,
    poll_id BIGINT NOT NULL,
    timestamp TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_suggestions_poll_id ON suggestions(poll_id);
CREATE INDEX IF NOT EXISTS idx_suggestions_approved ON suggestions(internal, approved);

CREATE TABLE IF NOT EXISTS polls (
    id BIGSERIAL PRIMARY KEY,
    message_id TEXT NOT NULL,
    author_id TEXT NOT NULL,
    internal BOOLEAN NOT NULL,
    status INTEGER NOT NULL DEFAULT 0,
    votes TEXT
);

CREATE INDEX IF NOT EXISTS idx_polls_message_id ON polls(message_id);
`
