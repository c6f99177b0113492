// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/feature-poll/models"
)

// Embed colors.
const (
	colorBlue  = 0x3498DB
	colorGreen = 0x57F287
	colorRed   = 0xE74C3C
)

// StatusLine formats a poll status for the embed's status field and picks
// the embed color that goes with it.
func StatusLine(status models.PollStatus, threshold int) (string, int) {
	switch status.Code {
	case models.StatusPending:
		return fmt.Sprintf("Pending (%d/%d) 🗳️", len(status.Votes), threshold), colorBlue
	case models.StatusCompleted:
		return "Completed ✅", colorGreen
	case models.StatusRevoked:
		return "Revoked 🗑️", colorRed
	default:
		return "Vetoed 🛑", colorRed
	}
}

// PollEmbed renders the voting message for a suggestion at a given status.
func PollEmbed(sug models.Suggestion, status models.PollStatus, threshold int, iconURL string) *discordgo.MessageEmbed {
	statusLine, color := StatusLine(status, threshold)

	fields := suggestionFields(sug)
	fields = append(fields, &discordgo.MessageEmbedField{Name: "Status", Value: statusLine})

	return &discordgo.MessageEmbed{
		Author: embedAuthor(sug, iconURL),
		Title:  fmt.Sprintf("%s Feature Artist Submission", models.CategoryTitle(sug.Internal)),
		Fields: fields,
		Color:  color,
	}
}

// PollButtons renders the vote buttons for a status: all three while
// pending, upvote disabled once completed, none at all once terminal.
func PollButtons(status models.PollStatus) []discordgo.MessageComponent {
	if status.Terminal() {
		return []discordgo.MessageComponent{}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Upvote",
					Style:    discordgo.SecondaryButton,
					CustomID: "poll:upvote",
					Emoji:    &discordgo.ComponentEmoji{Name: "👍"},
					Disabled: status.Code == models.StatusCompleted,
				},
				discordgo.Button{
					Label:    "Revoke",
					Style:    discordgo.SecondaryButton,
					CustomID: "poll:revoke",
					Emoji:    &discordgo.ComponentEmoji{Name: "🗑"},
				},
				discordgo.Button{
					Label:    "Veto",
					Style:    discordgo.SecondaryButton,
					CustomID: "poll:veto",
					Emoji:    &discordgo.ComponentEmoji{Name: "🛑"},
				},
			},
		},
	}
}

// PollContent is the message text above the poll embed.
func PollContent(userID string) string {
	return fmt.Sprintf("<@%s> here's your new submission!", userID)
}

// AnnouncementEmbed renders the featured-artist announcement for a picked
// suggestion.
func AnnouncementEmbed(sug models.Suggestion, iconURL string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Author: embedAuthor(sug, iconURL),
		Title:  fmt.Sprintf("New %s Feature Artist! 🌟 🎵", models.CategoryTitle(sug.Internal)),
		Fields: suggestionFields(sug),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Suggested %s", humanize.Time(sug.CreatedAt)),
		},
		Color: colorGreen,
	}
}

// AnnouncementContent is the role ping above the announcement embed.
func AnnouncementContent(roleID string) string {
	return fmt.Sprintf("<@&%s>", roleID)
}

func embedAuthor(sug models.Suggestion, iconURL string) *discordgo.MessageEmbedAuthor {
	return &discordgo.MessageEmbedAuthor{
		Name:    sug.Username,
		URL:     fmt.Sprintf("https://discordapp.com/users/%s", sug.UserID),
		IconURL: iconURL,
	}
}

func suggestionFields(sug models.Suggestion) []*discordgo.MessageEmbedField {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Artist Name", Value: sug.ArtistName, Inline: true},
		{Name: "Album Name", Value: sug.AlbumName, Inline: true},
		{Name: "Album Link(s)", Value: sug.Links},
	}
	if sug.Notes != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Other Comments", Value: sug.Notes})
	}
	return fields
}
