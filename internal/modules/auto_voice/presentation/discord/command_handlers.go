package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tempvoice/internal/bot"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/application/usecases"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
)

// Embed colors.
const (
	colorSuccess = 0x08c404
	colorError   = 0xE74C3C
)

// User-facing rejection messages.
const (
	msgNotInGuild      = "This command can only be used in a server."
	msgNotInVoice      = "You are not in a voice channel."
	msgNotModifiable   = "Permanent channels cannot be modified."
	msgModifyFailed    = "Failed to modify channel."
	msgCreateFailed    = "Failed to create channel."
	msgInvalidUser     = "Invalid user"
	msgInvalidCategory = "Invalid category"
)

// CommandHandlers holds all the command handlers.
type CommandHandlers struct {
	provisioning *usecases.ProvisioningService
	attributes   *usecases.ChannelAttributeService
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(
	provisioning *usecases.ProvisioningService,
	attributes *usecases.ChannelAttributeService,
) *CommandHandlers {
	return &CommandHandlers{
		provisioning: provisioning,
		attributes:   attributes,
	}
}

// HandleCreate handles the /create command.
func (h *CommandHandlers) HandleCreate(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	guildID, ok := parseGuildID(i)
	if !ok {
		return respondError(r, msgNotInGuild)
	}

	var parentID snowflake.ID
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "category" {
			id, err := snowflake.Parse(opt.ChannelValue(s).ID)
			if err != nil {
				return respondError(r, msgInvalidCategory)
			}
			parentID = id
		}
	}

	output, err := h.provisioning.CreatePrimary(ctx, usecases.CreatePrimaryInput{
		GuildID:  guildID,
		ParentID: parentID,
	})
	if err != nil {
		slog.Error("failed to create primary channel", "guild", guildID, "error", err)
		return respondCommandError(r, err, msgCreateFailed)
	}

	return respondSuccess(r, fmt.Sprintf("Created channel <#%d>.", output.ChannelID))
}

// HandleRename handles the /rename command.
func (h *CommandHandlers) HandleRename(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	input, ok, err := channelInput(i, r)
	if !ok {
		return err
	}

	var name string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "name" {
			name = opt.StringValue()
		}
	}

	output, err := h.attributes.Rename(ctx, usecases.RenameInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
		Name:    name,
	})
	if err != nil {
		logCommandError(CommandRename, input, err)
		return respondCommandError(r, err, msgModifyFailed)
	}

	return respondSuccess(r, fmt.Sprintf("Renamed channel to **%s**.", output.Name))
}

// HandlePrivate handles the /private command.
func (h *CommandHandlers) HandlePrivate(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	input, ok, err := channelInput(i, r)
	if !ok {
		return err
	}

	output, err := h.attributes.SetPrivate(ctx, input)
	if err != nil {
		logCommandError(CommandPrivate, input, err)
		return respondCommandError(r, err, msgModifyFailed)
	}

	return respondSuccess(r, fmt.Sprintf("<#%d> is now private.", output.ChannelID))
}

// HandlePublic handles the /public command.
func (h *CommandHandlers) HandlePublic(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	input, ok, err := channelInput(i, r)
	if !ok {
		return err
	}

	output, err := h.attributes.SetPublic(ctx, input)
	if err != nil {
		logCommandError(CommandPublic, input, err)
		return respondCommandError(r, err, msgModifyFailed)
	}

	return respondSuccess(r, fmt.Sprintf("<#%d> is now public.", output.ChannelID))
}

// HandleLimit handles the /limit command. The value is validated here so
// that an out-of-range limit never reaches the use case.
func (h *CommandHandlers) HandleLimit(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	var requested int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "limit" {
			requested = opt.IntValue()
		}
	}

	limit, err := domain.NewUserLimit(int(requested))
	if err != nil {
		return respondError(r, fmt.Sprintf(
			"The limit must be between %d and %d.",
			domain.MinUserLimit, domain.MaxUserLimit,
		))
	}

	input, ok, err := channelInput(i, r)
	if !ok {
		return err
	}

	output, err := h.attributes.SetLimit(ctx, usecases.SetLimitInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
		Limit:   limit,
	})
	if err != nil {
		logCommandError(CommandLimit, input, err)
		return respondCommandError(r, err, msgModifyFailed)
	}

	return respondSuccess(r, fmt.Sprintf("<#%d> is now limited to %d members.", output.ChannelID, limit))
}

// HandleUnlimit handles the /unlimit command.
func (h *CommandHandlers) HandleUnlimit(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	input, ok, err := channelInput(i, r)
	if !ok {
		return err
	}

	output, err := h.attributes.ClearLimit(ctx, input)
	if err != nil {
		logCommandError(CommandUnlimit, input, err)
		return respondCommandError(r, err, msgModifyFailed)
	}

	return respondSuccess(r, fmt.Sprintf("<#%d> no longer has a member limit.", output.ChannelID))
}

// parseGuildID returns the interaction's guild, or false outside a guild.
func parseGuildID(i *discordgo.InteractionCreate) (snowflake.ID, bool) {
	if i.GuildID == "" {
		return 0, false
	}
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return 0, false
	}
	return guildID, true
}

// channelInput extracts the invoking member. When it returns false the
// rejection has already been sent and err is the responder's result.
func channelInput(i *discordgo.InteractionCreate, r bot.Responder) (usecases.ChannelInput, bool, error) {
	guildID, ok := parseGuildID(i)
	if !ok || i.Member == nil || i.Member.User == nil {
		return usecases.ChannelInput{}, false, respondError(r, msgNotInGuild)
	}

	userID, err := snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return usecases.ChannelInput{}, false, respondError(r, msgInvalidUser)
	}

	return usecases.ChannelInput{GuildID: guildID, UserID: userID}, true, nil
}

// respondCommandError maps use case errors to user messages. Operational
// failures get the generic fallback message.
func respondCommandError(r bot.Responder, err error, fallback string) error {
	switch {
	case errors.Is(err, usecases.ErrNotInGuildContext):
		return respondError(r, msgNotInGuild)
	case errors.Is(err, usecases.ErrNotInVoiceChannel):
		return respondError(r, msgNotInVoice)
	case errors.Is(err, usecases.ErrNotModifiable):
		return respondError(r, msgNotModifiable)
	default:
		return respondError(r, fallback)
	}
}

func logCommandError(command string, input usecases.ChannelInput, err error) {
	if errors.Is(err, usecases.ErrDirectoryOperationFailed) ||
		errors.Is(err, usecases.ErrRegistryOperationFailed) {
		slog.Error("failed to handle command",
			"command", command,
			"guild", input.GuildID,
			"user", input.UserID,
			"error", err,
		)
	}
}

func respondSuccess(r bot.Responder, description string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: description,
					Color:       colorSuccess,
				},
			},
		},
	})
}

func respondError(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Error",
					Description: message,
					Color:       colorError,
				},
			},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}
