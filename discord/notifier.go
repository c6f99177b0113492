// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package discord

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/danielhkuo/feature-poll/cliparse"
)

// Notifier implements notify.Sink over a Discord bot session. It only
// transmits what the engine rendered; it never decides what to show.
type Notifier struct {
	session *discordgo.Session
	cfg     cliparse.Config
}

func NewNotifier(session *discordgo.Session, cfg cliparse.Config) *Notifier {
	return &Notifier{session: session, cfg: cfg}
}

func (n *Notifier) channelID(internal bool) string {
	if internal {
		return n.cfg.InternalChannelID
	}
	return n.cfg.ExternalChannelID
}

// PostPoll sends a poll message and returns its message ID.
func (n *Notifier) PostPoll(internal bool, content string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error) {
	msg, err := n.session.ChannelMessageSendComplex(n.channelID(internal), &discordgo.MessageSend{
		Content:    content,
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send poll message: %w", err)
	}

	return msg.ID, nil
}

// EditPoll replaces a poll message's embed and buttons.
func (n *Notifier) EditPoll(internal bool, messageID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	edit := discordgo.NewMessageEdit(n.channelID(internal), messageID)
	edit.Embeds = &[]*discordgo.MessageEmbed{embed}
	edit.Components = &components

	if _, err := n.session.ChannelMessageEditComplex(edit); err != nil {
		return fmt.Errorf("failed to edit poll message: %w", err)
	}

	return nil
}

// PostAnnouncement sends an announcement message.
func (n *Notifier) PostAnnouncement(internal bool, content string, embed *discordgo.MessageEmbed) error {
	_, err := n.session.ChannelMessageSendComplex(n.channelID(internal), &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		return fmt.Errorf("failed to send announcement: %w", err)
	}

	return nil
}

// UserIcon resolves a guild member's avatar URL, falling back to the
// default CDN avatar when the member can't be fetched.
func (n *Notifier) UserIcon(userID string) string {
	member, err := n.session.GuildMember(n.cfg.GuildID, userID)
	if err != nil {
		slog.Error("failed to fetch guild member", "error", err, "user_id", userID)
		return defaultAvatarURL(userID)
	}

	return member.AvatarURL("")
}

func defaultAvatarURL(userID string) string {
	id, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		id = 0
	}
	return fmt.Sprintf("https://cdn.discordapp.com/embed/avatars/%d.png", (id>>22)%6)
}
