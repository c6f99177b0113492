// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollcache

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/danielhkuo/feature-poll/models"
)

func testPolls() []models.Poll {
	return []models.Poll{
		models.NewPoll(1, "msg-1", "author-1", false),
		models.NewPoll(2, "msg-2", "author-2", true),
	}
}

func TestFindByMessage(t *testing.T) {
	cache := New(testPolls())

	poll, ok := cache.FindByMessage("msg-2")
	if !ok {
		t.Fatal("known message not found")
	}
	if poll.ID != 2 || !poll.Internal {
		t.Errorf("wrong poll returned: %+v", poll)
	}

	if _, ok := cache.FindByMessage("msg-nope"); ok {
		t.Error("unknown message found")
	}
}

// TestFindByMessageReturnsCopy verifies callers can't reach the cached vote
// set through a lookup.
func TestFindByMessageReturnsCopy(t *testing.T) {
	cache := New(testPolls())

	poll, _ := cache.FindByMessage("msg-1")
	poll.Status.Votes["intruder"] = struct{}{}

	cached, _ := cache.FindByMessage("msg-1")
	if len(cached.Status.Votes) != 0 {
		t.Errorf("mutation through lookup copy leaked: %v", cached.Status.Votes)
	}
}

func TestApplyUnknownMessage(t *testing.T) {
	cache := New(testPolls())

	_, err := cache.Apply("msg-nope", func(*models.Poll) (bool, error) {
		t.Fatal("mutation ran for unknown message")
		return false, nil
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestApplyMutates(t *testing.T) {
	cache := New(testPolls())

	poll, err := cache.Apply("msg-1", func(p *models.Poll) (bool, error) {
		p.Status.Votes["voter-x"] = struct{}{}
		return false, nil
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(poll.Status.Votes) != 1 {
		t.Errorf("returned poll missing mutation: %v", poll.Status.Votes)
	}

	cached, _ := cache.FindByMessage("msg-1")
	if len(cached.Status.Votes) != 1 {
		t.Errorf("cached poll missing mutation: %v", cached.Status.Votes)
	}
}

func TestApplyRemove(t *testing.T) {
	cache := New(testPolls())

	poll, err := cache.Apply("msg-1", func(p *models.Poll) (bool, error) {
		p.Status = models.PollStatus{Code: models.StatusRevoked}
		return true, nil
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if poll.Status.Code != models.StatusRevoked {
		t.Errorf("returned poll has code %d", poll.Status.Code)
	}

	if _, ok := cache.FindByMessage("msg-1"); ok {
		t.Error("removed poll still findable")
	}
	if cache.Len() != 1 {
		t.Errorf("expected 1 poll left, got %d", cache.Len())
	}
}

// TestApplyRemoveOnError verifies removal is honored even when the mutation
// reports an error, since fn only asks for it after the store rows are gone.
func TestApplyRemoveOnError(t *testing.T) {
	cache := New(testPolls())

	_, err := cache.Apply("msg-1", func(p *models.Poll) (bool, error) {
		return true, errors.New("edit failed")
	})
	if err == nil {
		t.Fatal("expected the mutation error back")
	}

	if _, ok := cache.FindByMessage("msg-1"); ok {
		t.Error("poll still cached after remove-with-error")
	}
}

// TestConcurrentApplySerializes races many voters at one poll and verifies
// every mutation observed its predecessor: the vote set ends up with every
// voter exactly once, which can't happen if two goroutines read the same
// snapshot.
func TestConcurrentApplySerializes(t *testing.T) {
	cache := New(testPolls())
	numVoters := 25

	var wg sync.WaitGroup
	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			_, err := cache.Apply("msg-1", func(p *models.Poll) (bool, error) {
				p.Status.Votes[fmt.Sprintf("voter-%d", n)] = struct{}{}
				return false, nil
			})
			if err != nil {
				t.Errorf("apply failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	poll, _ := cache.FindByMessage("msg-1")
	if len(poll.Status.Votes) != numVoters {
		t.Errorf("expected %d votes, got %d", numVoters, len(poll.Status.Votes))
	}
}

// TestConcurrentAddAndApply races Add against Apply on existing entries.
func TestConcurrentAddAndApply(t *testing.T) {
	cache := New(testPolls())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			cache.Add(models.NewPoll(int64(100+n), fmt.Sprintf("msg-new-%d", n), "author", false))
		}(i)
		go func(n int) {
			defer wg.Done()
			_, _ = cache.Apply("msg-2", func(p *models.Poll) (bool, error) {
				p.Status.Votes[fmt.Sprintf("voter-%d", n)] = struct{}{}
				return false, nil
			})
		}(i)
	}
	wg.Wait()

	if cache.Len() != 12 {
		t.Errorf("expected 12 polls, got %d", cache.Len())
	}
}
