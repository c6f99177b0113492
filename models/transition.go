package models

// Action is something an actor can do to a poll.
type Action int

const (
	ActionUpvote Action = iota
	ActionRevoke
	ActionVeto
)

// Authorization captures what the caller has already established about the
// actor. The transition function itself never talks to the chat platform.
type Authorization struct {
	IsAuthor      bool
	IsFacilitator bool
}

// Outcome is the result of applying an action to a poll status. Every
// combination of inputs produces an outcome; rejections are outcomes too,
// with Changed false and the reason in Reply.
type Outcome struct {
	Status    PollStatus
	Changed   bool
	Completed bool // the vote threshold was crossed by this action
	Reply     string
}

// Transition applies action by actor to status and returns the outcome. It is
// a pure function: the input status is never mutated, and it cannot fail.
func Transition(status PollStatus, action Action, actor string, auth Authorization, threshold int) Outcome {
	switch action {
	case ActionUpvote:
		return upvote(status, actor, auth, threshold)
	case ActionRevoke:
		return revoke(status, auth)
	case ActionVeto:
		return veto(status, auth)
	}
	return Outcome{Status: status, Reply: "Unknown poll action!"}
}

func upvote(status PollStatus, actor string, auth Authorization, threshold int) Outcome {
	if auth.IsAuthor {
		return Outcome{Status: status, Reply: "You can't vote on your own poll!"}
	}

	switch status.Code {
	case StatusPending:
		if _, voted := status.Votes[actor]; voted {
			return Outcome{Status: status, Reply: "You already voted!"}
		}

		next := status.Clone()
		next.Votes[actor] = struct{}{}

		if len(next.Votes) >= threshold {
			return Outcome{
				Status:    PollStatus{Code: StatusCompleted},
				Changed:   true,
				Completed: true,
				Reply:     "Vote added!",
			}
		}
		return Outcome{Status: next, Changed: true, Reply: "Vote added!"}

	case StatusCompleted:
		return Outcome{Status: status, Reply: "This poll has already been completed!"}
	case StatusRevoked:
		return Outcome{Status: status, Reply: "This poll has been revoked!"}
	default:
		return Outcome{Status: status, Reply: "This poll has been vetoed!"}
	}
}

func revoke(status PollStatus, auth Authorization) Outcome {
	if !auth.IsAuthor {
		return Outcome{Status: status, Reply: "Only the author of the poll can revoke it!"}
	}

	switch status.Code {
	case StatusPending, StatusCompleted:
		return Outcome{Status: PollStatus{Code: StatusRevoked}, Changed: true, Reply: "Poll revoked!"}
	case StatusRevoked:
		return Outcome{Status: status, Reply: "This poll has already been revoked!"}
	default:
		return Outcome{Status: status, Reply: "This poll has been vetoed!"}
	}
}

func veto(status PollStatus, auth Authorization) Outcome {
	if !auth.IsFacilitator {
		return Outcome{Status: status, Reply: "Only designated facilitators can veto polls!"}
	}

	switch status.Code {
	case StatusPending, StatusCompleted:
		return Outcome{Status: PollStatus{Code: StatusVetoed}, Changed: true, Reply: "Poll vetoed!"}
	case StatusRevoked:
		return Outcome{Status: status, Reply: "This poll has been revoked!"}
	default:
		return Outcome{Status: status, Reply: "This poll has already been vetoed!"}
	}
}
