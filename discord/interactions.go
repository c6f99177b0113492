// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package discord

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/danielhkuo/feature-poll/cliparse"
	"github.com/danielhkuo/feature-poll/handlers"
	"github.com/danielhkuo/feature-poll/models"
)

// Bot owns the interaction transport: the /suggest command, its submission
// modal, and the poll buttons. All state changes go through the handler; the
// bot only parses interactions and sends ephemeral replies.
type Bot struct {
	session *discordgo.Session
	handler *handlers.Handler
	cfg     cliparse.Config
}

func NewBot(session *discordgo.Session, handler *handlers.Handler, cfg cliparse.Config) *Bot {
	return &Bot{session: session, handler: handler, cfg: cfg}
}

// Start opens the gateway connection and registers the guild commands.
func (b *Bot) Start() error {
	b.session.AddHandler(b.onInteraction)
	b.session.Identify.Intents = discordgo.IntentsGuilds

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}

	if err := b.registerCommands(); err != nil {
		b.session.Close()
		return err
	}

	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) registerCommands() error {
	_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.cfg.GuildID, &discordgo.ApplicationCommand{
		Name:        "suggest",
		Description: "Suggest an artist to be featured.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "artist",
				Description: "Artists in the community are `internal`. All other artists are `external`.",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "internal", Value: "internal"},
					{Name: "external", Value: "external"},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to register suggest command: %w", err)
	}

	return nil
}

func (b *Bot) onInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID != b.cfg.GuildID {
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.onCommand(i)
	case discordgo.InteractionModalSubmit:
		b.onModalSubmit(i)
	case discordgo.InteractionMessageComponent:
		b.onComponent(i)
	}
}

// onCommand opens the suggestion modal for /suggest.
func (b *Bot) onCommand(i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != "suggest" || len(data.Options) == 0 {
		return
	}
	category := data.Options[0].StringValue()

	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "suggest:" + category,
			Title:    fmt.Sprintf("Suggest an %s artist!", category),
			Components: []discordgo.MessageComponent{
				textInputRow(&discordgo.TextInput{
					CustomID:    "artist_name",
					Label:       "Artist name",
					Style:       discordgo.TextInputShort,
					Placeholder: "The artist name",
					Required:    true,
					MaxLength:   256,
				}),
				textInputRow(&discordgo.TextInput{
					CustomID:    "album_name",
					Label:       "Album name",
					Style:       discordgo.TextInputShort,
					Placeholder: "The album name",
					Required:    true,
					MaxLength:   256,
				}),
				textInputRow(&discordgo.TextInput{
					CustomID:    "links",
					Label:       "Links",
					Style:       discordgo.TextInputParagraph,
					Placeholder: "One or more links to the album on any platform.\nEach link should be on a new line.",
					Required:    true,
					MaxLength:   1024,
				}),
				textInputRow(&discordgo.TextInput{
					CustomID:    "notes",
					Label:       "Notes",
					Style:       discordgo.TextInputParagraph,
					Placeholder: "Any additional notes",
					MaxLength:   1024,
				}),
			},
		},
	})
	if err != nil {
		slog.Error("failed to open suggestion modal", "error", err)
	}
}

// onModalSubmit turns a submitted suggestion form into a new poll.
func (b *Bot) onModalSubmit(i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	if !strings.HasPrefix(data.CustomID, "suggest:") {
		return
	}
	internal := data.CustomID == "suggest:internal"

	sug, err := models.ParseSubmission(i.Member.User.ID, i.Member.User.Username, modalInputs(data.Components), internal)
	if err != nil {
		slog.Error("failed to parse suggestion form", "error", err)
		b.replyEphemeral(i, "There was an error processing your submission.")
		return
	}

	if err := b.handler.Submit(sug); err != nil {
		slog.Error("failed to create poll", "error", err)
		b.replyEphemeral(i, "There was an error processing your submission.")
		return
	}

	b.replyEphemeral(i, "Thanks for your suggestion!")
}

// onComponent routes a poll button press to the vote handler.
func (b *Bot) onComponent(i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	if !strings.HasPrefix(customID, "poll:") {
		return
	}
	if i.ChannelID != b.cfg.InternalChannelID && i.ChannelID != b.cfg.ExternalChannelID {
		return
	}

	var action models.Action
	switch strings.TrimPrefix(customID, "poll:") {
	case "upvote":
		action = models.ActionUpvote
	case "revoke":
		action = models.ActionRevoke
	case "veto":
		action = models.ActionVeto
	default:
		slog.Error("unknown poll interaction", "custom_id", customID)
		b.replyEphemeral(i, "There was an error processing your interaction.")
		return
	}

	facilitator := slices.Contains(i.Member.Roles, b.cfg.FacilitatorRoleID)

	reply, err := b.handler.HandleVote(i.Message.ID, i.Member.User.ID, action, facilitator)
	if err != nil {
		slog.Error("failed to handle poll interaction", "error", err, "message_id", i.Message.ID)
		b.replyEphemeral(i, "There was an error processing your interaction.")
		return
	}

	b.replyEphemeral(i, reply)
}

func (b *Bot) replyEphemeral(i *discordgo.InteractionCreate, content string) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("failed to send interaction response", "error", err)
	}
}

func textInputRow(input *discordgo.TextInput) discordgo.MessageComponent {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{input}}
}

// modalInputs flattens the modal's action rows into field values in form
// order.
func modalInputs(components []discordgo.MessageComponent) []string {
	var inputs []string
	for _, component := range components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				inputs = append(inputs, input.Value)
			}
		}
	}
	return inputs
}
