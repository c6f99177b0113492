// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollcache

import (
	"fmt"
	"sync"

	"github.com/danielhkuo/feature-poll/db"
	"github.com/danielhkuo/feature-poll/models"
)

// Cache is the in-memory view of all non-terminal polls. One exclusive lock
// guards the whole collection: mutations are rare, and applying an action
// needs the find and the mutate to be atomic with respect to every other
// poll action, so a coarse lock is the simplest correct choice.
//
// The cache never talks to the store or the chat platform itself; callers
// sequence those inside Apply so durable state is written before cached
// state changes.
type Cache struct {
	mu    sync.Mutex
	polls []models.Poll
}

// New builds a cache over an already-loaded poll set.
func New(polls []models.Poll) *Cache {
	return &Cache{polls: polls}
}

// Load hydrates the cache from the store. Called once at startup; afterwards
// the cache is authoritative for routing and the store for durability.
func Load(store *db.Store) (*Cache, error) {
	polls, err := store.FetchPolls()
	if err != nil {
		return nil, fmt.Errorf("failed to load poll cache: %w", err)
	}

	return New(polls), nil
}

// Add appends a freshly created poll.
func (c *Cache) Add(poll models.Poll) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.polls = append(c.polls, poll)
}

// FindByMessage returns a copy of the poll displayed in the given message.
func (c *Cache) FindByMessage(messageID string) (models.Poll, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(messageID); i >= 0 {
		poll := c.polls[i]
		poll.Status = poll.Status.Clone()
		return poll, true
	}
	return models.Poll{}, false
}

// Apply runs fn against the poll displayed in the given message while
// holding the collection lock, so the whole read-modify-write (including the
// store write fn performs) is serialized against every other poll action.
// If fn returns remove=true the poll is dropped from the cache; removal is
// honored even when fn also returns an error, since fn only requests it
// once the store rows are already gone. The returned poll reflects the
// state after fn ran.
func (c *Cache) Apply(messageID string, fn func(poll *models.Poll) (remove bool, err error)) (models.Poll, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(messageID)
	if i < 0 {
		return models.Poll{}, fmt.Errorf("poll for message %s: %w", messageID, models.ErrNotFound)
	}

	remove, err := fn(&c.polls[i])
	poll := c.polls[i]

	if remove {
		c.polls = append(c.polls[:i], c.polls[i+1:]...)
	}

	return poll, err
}

// Len reports how many polls are cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.polls)
}

// indexOf must be called with the lock held.
func (c *Cache) indexOf(messageID string) int {
	for i := range c.polls {
		if c.polls[i].MessageID == messageID {
			return i
		}
	}
	return -1
}
