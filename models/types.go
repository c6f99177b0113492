package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors shared across packages.
var (
	// ErrNotFound means a poll or suggestion doesn't exist where one was
	// expected (cache/store desync, or nothing left to announce).
	ErrNotFound = errors.New("not found")

	// ErrValidation means a submission was malformed and nothing was stored.
	ErrValidation = errors.New("invalid submission")
)

// Suggestion is a submitted artist/album nomination. It lives in the store;
// the engine only holds it while building a poll or announcement message.
type Suggestion struct {
	ID         int64
	UserID     string
	Username   string
	ArtistName string
	AlbumName  string
	Links      string
	Notes      string // empty means no notes
	Internal   bool
	Approved   bool
	CreatedAt  time.Time
}

// Poll is the voting session attached to exactly one suggestion. The
// suggestion is joined store-side by poll ID, not held in memory.
type Poll struct {
	ID        int64
	MessageID string
	AuthorID  string
	Internal  bool
	Status    PollStatus
}

// NewPoll returns a poll in the initial pending state.
func NewPoll(id int64, messageID, authorID string, internal bool) Poll {
	return Poll{
		ID:        id,
		MessageID: messageID,
		AuthorID:  authorID,
		Internal:  internal,
		Status:    NewPending(),
	}
}

// ParseSubmission builds a Suggestion from modal inputs. The form has three
// required fields (artist, album, links) and an optional notes field.
func ParseSubmission(userID, username string, inputs []string, internal bool) (Suggestion, error) {
	if len(inputs) < 3 || len(inputs) > 4 {
		return Suggestion{}, fmt.Errorf("%w: expected 3-4 fields, got %d", ErrValidation, len(inputs))
	}

	for i, field := range inputs[:3] {
		if strings.TrimSpace(field) == "" {
			return Suggestion{}, fmt.Errorf("%w: field %d is empty", ErrValidation, i)
		}
	}

	s := Suggestion{
		UserID:     userID,
		Username:   username,
		ArtistName: inputs[0],
		AlbumName:  inputs[1],
		Links:      inputs[2],
		Internal:   internal,
	}
	if len(inputs) == 4 {
		s.Notes = inputs[3]
	}

	return s, nil
}

// Category returns the human-readable category name.
func Category(internal bool) string {
	if internal {
		return "internal"
	}
	return "external"
}

// CategoryTitle returns the category name as used in message titles.
func CategoryTitle(internal bool) string {
	if internal {
		return "Biweekly Internal"
	}
	return "Weekly External"
}
