package models

import (
	"fmt"
	"sort"
	"strings"
)

// StatusCode is the wire code for a poll status. The codes are stored as-is
// in the polls table, so they must not be reordered.
type StatusCode int

const (
	StatusPending   StatusCode = 0
	StatusCompleted StatusCode = 1
	StatusRevoked   StatusCode = 2
	StatusVetoed    StatusCode = 3
)

// PollStatus is a tagged union: only the pending variant carries a payload,
// the set of voter IDs. Votes is non-nil if and only if Code is StatusPending.
type PollStatus struct {
	Code  StatusCode
	Votes map[string]struct{}
}

// NewPending returns the initial poll status with no votes.
func NewPending() PollStatus {
	return PollStatus{Code: StatusPending, Votes: map[string]struct{}{}}
}

// Terminal reports whether the status can never change again.
func (s PollStatus) Terminal() bool {
	return s.Code == StatusRevoked || s.Code == StatusVetoed
}

// Clone returns a copy whose vote set is independent of the receiver's.
func (s PollStatus) Clone() PollStatus {
	if s.Votes == nil {
		return s
	}
	votes := make(map[string]struct{}, len(s.Votes))
	for id := range s.Votes {
		votes[id] = struct{}{}
	}
	return PollStatus{Code: s.Code, Votes: votes}
}

// ParseStatus decodes a status code and optional serialized vote list as
// stored in the polls table. A vote list on a non-pending status is invalid.
func ParseStatus(code int64, votes *string) (PollStatus, error) {
	switch StatusCode(code) {
	case StatusPending:
		s := NewPending()
		if votes != nil {
			for _, id := range strings.Split(*votes, ",") {
				if id != "" {
					s.Votes[id] = struct{}{}
				}
			}
		}
		return s, nil
	case StatusCompleted, StatusRevoked, StatusVetoed:
		if votes != nil && *votes != "" {
			return PollStatus{}, fmt.Errorf("invalid poll status: code %d with vote list", code)
		}
		return PollStatus{Code: StatusCode(code)}, nil
	default:
		return PollStatus{}, fmt.Errorf("invalid poll status: unknown code %d", code)
	}
}

// Encode returns the status code and serialized vote list for storage. The
// vote list is nil for every status except pending.
func (s PollStatus) Encode() (int64, *string) {
	if s.Code != StatusPending {
		return int64(s.Code), nil
	}

	ids := make([]string, 0, len(s.Votes))
	for id := range s.Votes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	joined := strings.Join(ids, ",")
	return int64(StatusPending), &joined
}
