// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import "github.com/bwmarrin/discordgo"

// Sink is the capability the engine uses to reach the chat platform. The
// engine builds the rendered representation (embeds, buttons, content) and
// the sink transmits it; nothing here can change poll or suggestion state.
type Sink interface {
	// PostPoll sends a new poll message to the category's channel and
	// returns the reference of the created message.
	PostPoll(internal bool, content string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error)

	// EditPoll replaces the embed and buttons of an existing poll message.
	// An empty components slice clears the buttons.
	EditPoll(internal bool, messageID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error

	// PostAnnouncement sends an announcement to the category's channel.
	PostAnnouncement(internal bool, content string, embed *discordgo.MessageEmbed) error

	// UserIcon resolves a user's avatar URL, falling back to a default
	// icon. It never fails.
	UserIcon(userID string) string
}
