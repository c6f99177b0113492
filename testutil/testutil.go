// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/feature-poll/cliparse"
	"github.com/danielhkuo/feature-poll/db"
)

// SetupTestDB creates a fresh SQLite database in a per-test temp directory
// with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		DatabaseType:        "sqlite",
		GuildID:             "guild-1",
		InternalChannelID:   "chan-internal",
		ExternalChannelID:   "chan-external",
		AnnouncementRoleID:  "role-announce",
		FacilitatorRoleID:   "role-facilitator",
		PollThreshold:       2,
		AnnouncementWeekday: time.Wednesday,
		AnnouncementTime:    14 * time.Hour,
	}
}

// CreateTestPoll inserts a pending poll and returns its ID and the minted
// message reference.
func CreateTestPoll(t *testing.T, store *db.Store, authorID string, internal bool) (int64, string) {
	t.Helper()

	messageID := uuid.NewString()
	pollID, err := store.InsertPoll(messageID, authorID, internal)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID, messageID
}

// CreateTestSuggestion inserts a suggestion row directly, with an explicit
// submission time so picker ordering is deterministic.
func CreateTestSuggestion(t *testing.T, conn *sql.DB, pollID int64, userID string, internal, approved bool, createdAt time.Time) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO suggestions (user_id, username, artist_name, album_name, links, notes, internal, approved, poll_id, timestamp)
		VALUES ($1, $2, 'Test Artist', 'Test Album', 'https://example.com/album', NULL, $3, $4, $5, $6)
		RETURNING id
	`, userID, "user-"+userID, internal, approved, pollID, createdAt).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test suggestion: %v", err)
	}

	return id
}

// SentMessage records one call into the FakeSink.
type SentMessage struct {
	Internal   bool
	MessageID  string
	Content    string
	Embed      *discordgo.MessageEmbed
	Components []discordgo.MessageComponent
}

// FakeSink is a notify.Sink that records everything and can be told to fail.
type FakeSink struct {
	mu            sync.Mutex
	polls         []SentMessage
	edits         []SentMessage
	announcements []SentMessage

	FailPost     bool
	FailEdit     bool
	FailAnnounce bool
}

func NewFakeSink() *FakeSink {
	return &FakeSink{}
}

func (f *FakeSink) PostPoll(internal bool, content string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailPost {
		return "", errors.New("fake sink: post failed")
	}

	messageID := uuid.NewString()
	f.polls = append(f.polls, SentMessage{
		Internal: internal, MessageID: messageID, Content: content,
		Embed: embed, Components: components,
	})
	return messageID, nil
}

func (f *FakeSink) EditPoll(internal bool, messageID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailEdit {
		return errors.New("fake sink: edit failed")
	}

	f.edits = append(f.edits, SentMessage{
		Internal: internal, MessageID: messageID,
		Embed: embed, Components: components,
	})
	return nil
}

func (f *FakeSink) PostAnnouncement(internal bool, content string, embed *discordgo.MessageEmbed) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailAnnounce {
		return errors.New("fake sink: announce failed")
	}

	f.announcements = append(f.announcements, SentMessage{
		Internal: internal, Content: content, Embed: embed,
	})
	return nil
}

func (f *FakeSink) UserIcon(userID string) string {
	return "https://cdn.discordapp.com/embed/avatars/0.png"
}

// Polls returns a snapshot of recorded poll posts.
func (f *FakeSink) Polls() []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SentMessage(nil), f.polls...)
}

// Edits returns a snapshot of recorded poll edits.
func (f *FakeSink) Edits() []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SentMessage(nil), f.edits...)
}

// Announcements returns a snapshot of recorded announcements.
func (f *FakeSink) Announcements() []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SentMessage(nil), f.announcements...)
}
