// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"

	"github.com/danielhkuo/feature-poll/cliparse"
	"github.com/danielhkuo/feature-poll/db"
	"github.com/danielhkuo/feature-poll/models"
	"github.com/danielhkuo/feature-poll/notify"
	"github.com/danielhkuo/feature-poll/pollcache"
	"github.com/danielhkuo/feature-poll/render"
)

// Handler sequences the poll lifecycle: it consults the vote state machine,
// persists results, keeps the cache in sync, and tells the sink what to
// show. It owns the ordering rules; the pieces it coordinates are dumb.
type Handler struct {
	store *db.Store
	cache *pollcache.Cache
	sink  notify.Sink
	cfg   cliparse.Config
}

func New(store *db.Store, cache *pollcache.Cache, sink notify.Sink, cfg cliparse.Config) *Handler {
	return &Handler{store: store, cache: cache, sink: sink, cfg: cfg}
}

// Submit creates the poll for a validated suggestion: post the poll message,
// insert the poll row, insert the suggestion row, then add the poll to the
// cache. The message goes out first because the poll row needs its reference.
func (h *Handler) Submit(sug models.Suggestion) error {
	status := models.NewPending()
	embed := render.PollEmbed(sug, status, h.cfg.PollThreshold, h.sink.UserIcon(sug.UserID))

	messageID, err := h.sink.PostPoll(sug.Internal, render.PollContent(sug.UserID), embed, render.PollButtons(status))
	if err != nil {
		return fmt.Errorf("failed to post poll message: %w", err)
	}

	pollID, err := h.store.InsertPoll(messageID, sug.UserID, sug.Internal)
	if err != nil {
		return err
	}

	if err := h.store.InsertSuggestion(sug, pollID); err != nil {
		return err
	}

	h.cache.Add(models.NewPoll(pollID, messageID, sug.UserID, sug.Internal))

	slog.Info("poll created", "poll_id", pollID, "message_id", messageID,
		"category", models.Category(sug.Internal))

	return nil
}

// HandleVote applies an upvote, revoke, or veto from actor to the poll shown
// in the given message and returns the user-facing reply. The entire
// read-modify-write runs under the cache lock; the store is written before
// the cached status changes, and the poll message is edited last, so the
// visible state never outpaces the durable state.
func (h *Handler) HandleVote(messageID, actorID string, action models.Action, isFacilitator bool) (string, error) {
	var reply string

	_, err := h.cache.Apply(messageID, func(poll *models.Poll) (bool, error) {
		auth := models.Authorization{
			IsAuthor:      actorID == poll.AuthorID,
			IsFacilitator: isFacilitator,
		}
		out := models.Transition(poll.Status, action, actorID, auth, h.cfg.PollThreshold)
		reply = out.Reply

		if !out.Changed {
			return false, nil
		}

		// The embed rebuild needs the suggestion regardless of which
		// transition fired.
		sug, err := h.store.SuggestionByPoll(poll.ID)
		if err != nil {
			return false, err
		}

		if out.Status.Terminal() {
			// Poll and suggestion leave the store together; the cache entry
			// goes with them even if the message edit below fails.
			if err := h.store.DeletePoll(poll.ID); err != nil {
				return false, err
			}
			if err := h.store.DeleteSuggestionByPoll(poll.ID); err != nil {
				return true, err
			}
			poll.Status = out.Status

			embed := render.PollEmbed(sug, out.Status, h.cfg.PollThreshold, h.sink.UserIcon(sug.UserID))
			if err := h.sink.EditPoll(poll.Internal, poll.MessageID, embed, render.PollButtons(out.Status)); err != nil {
				return true, fmt.Errorf("failed to edit poll message: %w", err)
			}

			slog.Info("poll closed", "poll_id", poll.ID, "status", int(out.Status.Code))
			return true, nil
		}

		if out.Completed {
			if err := h.store.ApproveSuggestion(poll.ID); err != nil {
				return false, err
			}
		}
		if err := h.store.UpdatePollStatus(poll.ID, out.Status); err != nil {
			return false, err
		}
		poll.Status = out.Status

		embed := render.PollEmbed(sug, out.Status, h.cfg.PollThreshold, h.sink.UserIcon(sug.UserID))
		if err := h.sink.EditPoll(poll.Internal, poll.MessageID, embed, render.PollButtons(out.Status)); err != nil {
			return false, fmt.Errorf("failed to edit poll message: %w", err)
		}

		if out.Completed {
			slog.Info("poll completed", "poll_id", poll.ID)
		}
		return false, nil
	})
	if err != nil {
		return "", err
	}

	return reply, nil
}

// Announce picks the next approved suggestion of the category and posts the
// featured-artist announcement. Returns models.ErrNotFound (wrapped) when
// there is nothing to announce.
func (h *Handler) Announce(internal bool) error {
	sug, err := h.store.PickSuggestion(internal)
	if err != nil {
		return err
	}

	embed := render.AnnouncementEmbed(sug, h.sink.UserIcon(sug.UserID))
	if err := h.sink.PostAnnouncement(internal, render.AnnouncementContent(h.cfg.AnnouncementRoleID), embed); err != nil {
		return fmt.Errorf("failed to post announcement: %w", err)
	}

	slog.Info("announcement posted", "category", models.Category(internal),
		"artist", sug.ArtistName, "suggested_by", sug.Username)

	return nil
}
