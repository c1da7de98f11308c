package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
)

// Command names.
const (
	CommandCreate  = "create"
	CommandRename  = "rename"
	CommandPrivate = "private"
	CommandPublic  = "public"
	CommandLimit   = "limit"
	CommandUnlimit = "unlimit"
)

// maxNameLength leaves room for the decoration within Discord's 100
// character channel name limit.
const maxNameLength = 98

var manageChannelsPermission int64 = discordgo.PermissionManageChannels

var guildOnly = &[]discordgo.InteractionContextType{discordgo.InteractionContextGuild}

// Commands returns all slash commands for the auto voice module.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     CommandCreate,
			Description:              "Create a channel that opens a new voice session when joined",
			DefaultMemberPermissions: &manageChannelsPermission,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "category",
					Description:  "Category to create the channel in",
					Required:     false,
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory},
				},
			},
		},
		{
			Name:        CommandRename,
			Description: "Rename your voice channel",
			Contexts:    guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "The new name of the channel",
					Required:    true,
					MaxLength:   maxNameLength,
				},
			},
		},
		{
			Name:        CommandPrivate,
			Description: "Prevent others from joining your voice channel",
			Contexts:    guildOnly,
		},
		{
			Name:        CommandPublic,
			Description: "Allow everyone to join your voice channel",
			Contexts:    guildOnly,
		},
		{
			Name:        CommandLimit,
			Description: "Limit the number of members in your voice channel",
			Contexts:    guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "limit",
					Description: "Maximum number of members",
					Required:    true,
					MinValue:    floatPtr(domain.MinUserLimit),
					MaxValue:    domain.MaxUserLimit,
				},
			},
		},
		{
			Name:        CommandUnlimit,
			Description: "Remove the member limit from your voice channel",
			Contexts:    guildOnly,
		},
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
