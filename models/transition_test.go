// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "testing"

const threshold = 2

func pendingWith(voters ...string) PollStatus {
	s := NewPending()
	for _, v := range voters {
		s.Votes[v] = struct{}{}
	}
	return s
}

// TestUpvoteBySubmitter verifies that a submitter's own upvote never changes
// the vote set, whatever state the poll is in.
func TestUpvoteBySubmitter(t *testing.T) {
	statuses := []PollStatus{
		NewPending(),
		pendingWith("x"),
		{Code: StatusCompleted},
		{Code: StatusRevoked},
		{Code: StatusVetoed},
	}

	for _, status := range statuses {
		out := Transition(status, ActionUpvote, "author", Authorization{IsAuthor: true}, threshold)

		if out.Changed {
			t.Errorf("status %d: self-vote changed the poll", status.Code)
		}
		if out.Reply != "You can't vote on your own poll!" {
			t.Errorf("status %d: unexpected reply %q", status.Code, out.Reply)
		}
	}
}

// TestUpvoteAddsVote verifies a first vote below the threshold stays pending.
func TestUpvoteAddsVote(t *testing.T) {
	out := Transition(NewPending(), ActionUpvote, "voter-x", Authorization{}, threshold)

	if !out.Changed || out.Completed {
		t.Fatalf("expected changed, not completed; got changed=%v completed=%v", out.Changed, out.Completed)
	}
	if out.Status.Code != StatusPending {
		t.Errorf("expected pending, got code %d", out.Status.Code)
	}
	if _, ok := out.Status.Votes["voter-x"]; !ok || len(out.Status.Votes) != 1 {
		t.Errorf("expected exactly {voter-x}, got %v", out.Status.Votes)
	}
	if out.Reply != "Vote added!" {
		t.Errorf("unexpected reply %q", out.Reply)
	}
}

// TestUpvoteDoesNotMutateInput verifies Transition is pure: the input status
// keeps its original vote set.
func TestUpvoteDoesNotMutateInput(t *testing.T) {
	status := NewPending()
	Transition(status, ActionUpvote, "voter-x", Authorization{}, threshold)

	if len(status.Votes) != 0 {
		t.Errorf("input status was mutated: %v", status.Votes)
	}
}

// TestUpvoteIdempotent verifies a repeated vote is a no-op.
func TestUpvoteIdempotent(t *testing.T) {
	out := Transition(pendingWith("voter-x"), ActionUpvote, "voter-x", Authorization{}, threshold)

	if out.Changed {
		t.Error("repeated vote changed the poll")
	}
	if out.Reply != "You already voted!" {
		t.Errorf("unexpected reply %q", out.Reply)
	}
	if len(out.Status.Votes) != 1 {
		t.Errorf("vote set size changed: %v", out.Status.Votes)
	}
}

// TestUpvoteCompletesAtThreshold verifies the threshold vote flips the poll
// to completed exactly once, and later upvotes are rejected.
func TestUpvoteCompletesAtThreshold(t *testing.T) {
	out := Transition(pendingWith("voter-x"), ActionUpvote, "voter-y", Authorization{}, threshold)

	if !out.Completed {
		t.Fatal("threshold vote did not complete the poll")
	}
	if out.Status.Code != StatusCompleted {
		t.Fatalf("expected completed, got code %d", out.Status.Code)
	}
	if out.Status.Votes != nil {
		t.Error("completed status should carry no vote set")
	}

	// A third voter hits the completed poll.
	out = Transition(out.Status, ActionUpvote, "voter-z", Authorization{}, threshold)
	if out.Changed || out.Completed {
		t.Error("upvote on a completed poll changed it")
	}
	if out.Reply != "This poll has already been completed!" {
		t.Errorf("unexpected reply %q", out.Reply)
	}
}

// TestVoteCountStrictlyIncreases walks distinct voters through a poll and
// checks the count rises by one each time until the threshold.
func TestVoteCountStrictlyIncreases(t *testing.T) {
	bigThreshold := 4
	voters := []string{"a", "b", "c", "d"}
	status := NewPending()

	for i, voter := range voters {
		out := Transition(status, ActionUpvote, voter, Authorization{}, bigThreshold)
		if !out.Changed {
			t.Fatalf("vote %d rejected: %q", i, out.Reply)
		}

		if i == len(voters)-1 {
			if !out.Completed {
				t.Fatal("final vote did not complete")
			}
			break
		}

		if got := len(out.Status.Votes); got != i+1 {
			t.Fatalf("after vote %d expected %d votes, got %d", i, i+1, got)
		}
		status = out.Status
	}
}

// TestRevokeAuthorization verifies revoke succeeds only for the author and
// only from pending or completed.
func TestRevokeAuthorization(t *testing.T) {
	// Non-author is rejected whatever the state.
	out := Transition(NewPending(), ActionRevoke, "stranger", Authorization{}, threshold)
	if out.Changed || out.Reply != "Only the author of the poll can revoke it!" {
		t.Errorf("non-author revoke: changed=%v reply=%q", out.Changed, out.Reply)
	}

	cases := []struct {
		status  PollStatus
		changed bool
		reply   string
	}{
		{NewPending(), true, "Poll revoked!"},
		{PollStatus{Code: StatusCompleted}, true, "Poll revoked!"},
		{PollStatus{Code: StatusRevoked}, false, "This poll has already been revoked!"},
		{PollStatus{Code: StatusVetoed}, false, "This poll has been vetoed!"},
	}
	for _, tc := range cases {
		out := Transition(tc.status, ActionRevoke, "author", Authorization{IsAuthor: true}, threshold)
		if out.Changed != tc.changed || out.Reply != tc.reply {
			t.Errorf("revoke from code %d: changed=%v reply=%q", tc.status.Code, out.Changed, out.Reply)
		}
		if tc.changed && out.Status.Code != StatusRevoked {
			t.Errorf("revoke from code %d: got code %d", tc.status.Code, out.Status.Code)
		}
	}
}

// TestVetoAuthorization verifies veto requires the facilitator capability
// and gives status-specific rejections from terminal states.
func TestVetoAuthorization(t *testing.T) {
	out := Transition(NewPending(), ActionVeto, "stranger", Authorization{}, threshold)
	if out.Changed || out.Reply != "Only designated facilitators can veto polls!" {
		t.Errorf("non-facilitator veto: changed=%v reply=%q", out.Changed, out.Reply)
	}

	cases := []struct {
		status  PollStatus
		changed bool
		reply   string
	}{
		{NewPending(), true, "Poll vetoed!"},
		{PollStatus{Code: StatusCompleted}, true, "Poll vetoed!"},
		{PollStatus{Code: StatusRevoked}, false, "This poll has been revoked!"},
		{PollStatus{Code: StatusVetoed}, false, "This poll has already been vetoed!"},
	}
	for _, tc := range cases {
		out := Transition(tc.status, ActionVeto, "mod", Authorization{IsFacilitator: true}, threshold)
		if out.Changed != tc.changed || out.Reply != tc.reply {
			t.Errorf("veto from code %d: changed=%v reply=%q", tc.status.Code, out.Changed, out.Reply)
		}
		if tc.changed && out.Status.Code != StatusVetoed {
			t.Errorf("veto from code %d: got code %d", tc.status.Code, out.Status.Code)
		}
	}
}

// TestTransitionIsTotal sweeps every action against every state and checks
// an outcome with a reply always comes back.
func TestTransitionIsTotal(t *testing.T) {
	statuses := []PollStatus{
		NewPending(),
		pendingWith("x"),
		{Code: StatusCompleted},
		{Code: StatusRevoked},
		{Code: StatusVetoed},
	}
	auths := []Authorization{
		{},
		{IsAuthor: true},
		{IsFacilitator: true},
	}

	for _, status := range statuses {
		for _, action := range []Action{ActionUpvote, ActionRevoke, ActionVeto} {
			for _, auth := range auths {
				out := Transition(status, action, "actor", auth, threshold)
				if out.Reply == "" {
					t.Errorf("no reply for status=%d action=%d auth=%+v", status.Code, action, auth)
				}
			}
		}
	}
}
