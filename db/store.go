// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/feature-poll/models"
)

// Store wraps the SQL database with the operations the engine needs. All
// methods are safe for concurrent use; the pool serializes its own writes.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// InsertSuggestion adds a new suggestion tied to an existing poll. The
// submission time is written explicitly so both backends store it the same
// way.
func (s *Store) InsertSuggestion(sug models.Suggestion, pollID int64) error {
	notes := sql.NullString{String: sug.Notes, Valid: sug.Notes != ""}

	createdAt := sug.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO suggestions (user_id, username, artist_name, album_name, links, notes, internal, poll_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, sug.UserID, sug.Username, sug.ArtistName, sug.AlbumName, sug.Links, notes, sug.Internal, pollID, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert suggestion: %w", err)
	}

	return nil
}

// SuggestionByPoll fetches the suggestion attached to a poll.
func (s *Store) SuggestionByPoll(pollID int64) (models.Suggestion, error) {
	var sug models.Suggestion
	var notes sql.NullString

	err := s.db.QueryRow(`
		SELECT id, user_id, username, artist_name, album_name, links, notes, internal, approved, timestamp
		FROM suggestions
		WHERE poll_id = $1
	`, pollID).Scan(&sug.ID, &sug.UserID, &sug.Username, &sug.ArtistName, &sug.AlbumName,
		&sug.Links, &notes, &sug.Internal, &sug.Approved, &sug.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Suggestion{}, fmt.Errorf("suggestion for poll %d: %w", pollID, models.ErrNotFound)
	}
	if err != nil {
		return models.Suggestion{}, fmt.Errorf("failed to fetch suggestion: %w", err)
	}

	sug.Notes = notes.String
	return sug, nil
}

// ApproveSuggestion marks the suggestion attached to a poll as approved,
// making it eligible for the picker.
func (s *Store) ApproveSuggestion(pollID int64) error {
	_, err := s.db.Exec(`
		UPDATE suggestions SET approved = TRUE WHERE poll_id = $1
	`, pollID)
	if err != nil {
		return fmt.Errorf("failed to approve suggestion: %w", err)
	}

	return nil
}

// DeleteSuggestionByPoll removes the suggestion attached to a poll.
func (s *Store) DeleteSuggestionByPoll(pollID int64) error {
	_, err := s.db.Exec(`
		DELETE FROM suggestions WHERE poll_id = $1
	`, pollID)
	if err != nil {
		return fmt.Errorf("failed to delete suggestion: %w", err)
	}

	return nil
}

// PickSuggestion selects and consumes the next suggestion to announce for a
// category. Among approved suggestions of the category it takes each
// submitter's earliest, then the overall earliest of those, so no submitter
// can supply more than one candidate per pick. The chosen suggestion is
// deleted before returning. Returns models.ErrNotFound when nothing is
// eligible.
func (s *Store) PickSuggestion(internal bool) (models.Suggestion, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Suggestion{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT id, user_id, username, artist_name, album_name, links, notes, internal, approved, timestamp
		FROM suggestions
		WHERE internal = $1 AND approved = TRUE
		ORDER BY timestamp, id
	`, internal)
	if err != nil {
		return models.Suggestion{}, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	// One candidate per submitter: rows are ordered by submission time, so
	// the first row seen for a submitter is that submitter's earliest.
	var eligible []models.Suggestion
	seen := map[string]bool{}

	for rows.Next() {
		var sug models.Suggestion
		var notes sql.NullString
		if err := rows.Scan(&sug.ID, &sug.UserID, &sug.Username, &sug.ArtistName, &sug.AlbumName,
			&sug.Links, &notes, &sug.Internal, &sug.Approved, &sug.CreatedAt); err != nil {
			return models.Suggestion{}, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		sug.Notes = notes.String

		if !seen[sug.UserID] {
			seen[sug.UserID] = true
			eligible = append(eligible, sug)
		}
	}
	if err := rows.Err(); err != nil {
		return models.Suggestion{}, fmt.Errorf("failed to read suggestions: %w", err)
	}

	if len(eligible) == 0 {
		return models.Suggestion{}, fmt.Errorf("no approved %s suggestion: %w",
			models.Category(internal), models.ErrNotFound)
	}

	// Earliest among the per-submitter candidates.
	pick := eligible[0]
	for _, sug := range eligible[1:] {
		if sug.CreatedAt.Before(pick.CreatedAt) ||
			(sug.CreatedAt.Equal(pick.CreatedAt) && sug.ID < pick.ID) {
			pick = sug
		}
	}

	if _, err := tx.Exec(`DELETE FROM suggestions WHERE id = $1`, pick.ID); err != nil {
		return models.Suggestion{}, fmt.Errorf("failed to consume suggestion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Suggestion{}, fmt.Errorf("failed to commit pick: %w", err)
	}

	return pick, nil
}

// InsertPoll adds a new pending poll and returns its ID.
func (s *Store) InsertPoll(messageID, authorID string, internal bool) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
		INSERT INTO polls (message_id, author_id, internal)
		VALUES ($1, $2, $3)
		RETURNING id
	`, messageID, authorID, internal).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert poll: %w", err)
	}

	return id, nil
}

// FetchPolls loads every stored poll; terminal polls are deleted rather than
// kept, so this is exactly the set the cache should hold.
func (s *Store) FetchPolls() ([]models.Poll, error) {
	rows, err := s.db.Query(`
		SELECT id, message_id, author_id, internal, status, votes
		FROM polls
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch polls: %w", err)
	}
	defer rows.Close()

	var polls []models.Poll
	for rows.Next() {
		var poll models.Poll
		var code int64
		var votes sql.NullString

		if err := rows.Scan(&poll.ID, &poll.MessageID, &poll.AuthorID, &poll.Internal, &code, &votes); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}

		var votesPtr *string
		if votes.Valid {
			votesPtr = &votes.String
		}
		poll.Status, err = models.ParseStatus(code, votesPtr)
		if err != nil {
			return nil, fmt.Errorf("poll %d: %w", poll.ID, err)
		}

		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read polls: %w", err)
	}

	return polls, nil
}

// UpdatePollStatus persists a poll's status and vote list.
func (s *Store) UpdatePollStatus(pollID int64, status models.PollStatus) error {
	code, votes := status.Encode()

	var votesVal sql.NullString
	if votes != nil {
		votesVal = sql.NullString{String: *votes, Valid: true}
	}

	_, err := s.db.Exec(`
		UPDATE polls SET status = $1, votes = $2 WHERE id = $3
	`, code, votesVal, pollID)
	if err != nil {
		return fmt.Errorf("failed to update poll status: %w", err)
	}

	return nil
}

// DeletePoll removes a poll row.
func (s *Store) DeletePoll(pollID int64) error {
	_, err := s.db.Exec(`
		DELETE FROM polls WHERE id = $1
	`, pollID)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}

	return nil
}
