// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/danielhkuo/feature-poll/cliparse"
)

// Announcer posts the featured-artist announcement for a category.
type Announcer interface {
	Announce(internal bool) error
}

// Scheduler runs the announcement loop: external every cycle, internal every
// other cycle. The alternation survives restarts through a one-byte flag
// file; everything else is recomputed from the clock each iteration.
type Scheduler struct {
	announcer Announcer
	cfg       cliparse.Config
}

func New(announcer Announcer, cfg cliparse.Config) *Scheduler {
	return &Scheduler{announcer: announcer, cfg: cfg}
}

// NextWeekdayAt returns the next instant with the given weekday and
// time-of-day (UTC), strictly after now unless today's occurrence is still
// ahead. When now is already past today's occurrence on the right weekday,
// the result is a full week out, never today.
func NextWeekdayAt(now time.Time, weekday time.Weekday, timeOfDay time.Duration) time.Time {
	now = now.UTC()
	todayAt := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(timeOfDay)

	if todayAt.Weekday() == weekday && now.Before(todayAt) {
		return todayAt
	}

	offset := (int(weekday) - int(todayAt.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return todayAt.AddDate(0, 0, offset)
}

// Run loops until ctx is done. Announcement failures are logged and the
// loop continues; a missed announcement is retried next cycle by virtue of
// the picker consuming nothing on failure to pick.
func (s *Scheduler) Run(ctx context.Context) {
	internalThisCycle := s.loadCadenceFlag()

	for {
		var wait time.Duration
		if s.cfg.DebugInterval > 0 {
			wait = s.cfg.DebugInterval
		} else {
			now := time.Now()
			wait = NextWeekdayAt(now, s.cfg.AnnouncementWeekday, s.cfg.AnnouncementTime).Sub(now)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		if err := s.announcer.Announce(false); err != nil {
			slog.Error("failed to post external announcement", "error", err)
		}

		if internalThisCycle {
			if err := s.announcer.Announce(true); err != nil {
				slog.Error("failed to post internal announcement", "error", err)
			}
		}

		internalThisCycle = !internalThisCycle
		if err := s.saveCadenceFlag(internalThisCycle); err != nil {
			// Not fatal: the in-memory flag still alternates for this
			// process; only a restart would see stale parity.
			slog.Error("failed to persist cadence flag", "error", err, "path", s.cfg.CadenceFlagPath)
		}
	}
}

// loadCadenceFlag reads the persisted cadence parity. A missing or
// unreadable file is the initial even phase (false).
func (s *Scheduler) loadCadenceFlag() bool {
	data, err := os.ReadFile(s.cfg.CadenceFlagPath)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to read cadence flag", "error", err, "path", s.cfg.CadenceFlagPath)
		}
		return false
	}
	if len(data) == 0 {
		return false
	}

	return data[0]%2 == 1
}

func (s *Scheduler) saveCadenceFlag(value bool) error {
	b := byte(0)
	if value {
		b = 1
	}

	if err := os.WriteFile(s.cfg.CadenceFlagPath, []byte{b}, 0o644); err != nil {
		return fmt.Errorf("failed to write cadence flag: %w", err)
	}
	return nil
}
