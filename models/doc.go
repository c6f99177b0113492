// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the suggestion/poll domain types and the vote state
machine.

# Domain Types

  - Suggestion: a submitted artist/album nomination
  - Poll: the voting session attached 1:1 to a suggestion
  - PollStatus: tagged union over the status codes below

# Status Codes

Stored verbatim in the polls table:

	StatusPending   = 0 (carries the voter-ID set)
	StatusCompleted = 1
	StatusRevoked   = 2
	StatusVetoed    = 3

Only the pending variant carries a vote list on the wire (comma-joined voter
IDs); ParseStatus rejects a vote list on any other code.

# Vote State Machine

Transition is a pure, total function over (status, action, actor,
authorization). It never fails: rejected actions come back as unchanged
outcomes carrying a user-facing reply. Transitions are one-directional:

	Pending → Completed (threshold reached)
	Pending | Completed → Revoked (author only)
	Pending | Completed → Vetoed (facilitator only)

Revoked and Vetoed are terminal.

# Validation

ParseSubmission turns raw modal inputs into a Suggestion, rejecting malformed
forms with ErrValidation before anything touches the store.
*/
package models
