package discord

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/application/ports"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
)

// stubDirectory is a test double for ports.ChannelDirectory that places one
// member in one channel and counts every call.
type stubDirectory struct {
	mu sync.Mutex

	memberChannel snowflake.ID
	calls         int
	limit         *domain.UserLimit
	name          string

	err error
}

func (d *stubDirectory) record() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	return d.err
}

func (d *stubDirectory) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func (d *stubDirectory) ChannelParent(context.Context, snowflake.ID) (snowflake.ID, error) {
	return 0, d.record()
}

func (d *stubDirectory) CreateVoiceChannel(
	context.Context,
	snowflake.ID,
	ports.VoiceChannelSpec,
) (snowflake.ID, error) {
	if err := d.record(); err != nil {
		return 0, err
	}
	return 900, nil
}

func (d *stubDirectory) DeleteChannel(context.Context, snowflake.ID) error {
	return d.record()
}

func (d *stubDirectory) ChannelOccupants(context.Context, snowflake.ID, snowflake.ID) ([]snowflake.ID, error) {
	return nil, d.record()
}

func (d *stubDirectory) MoveMember(context.Context, snowflake.ID, snowflake.ID, snowflake.ID) error {
	return d.record()
}

func (d *stubDirectory) FindMemberVoiceChannel(context.Context, snowflake.ID, snowflake.ID) (snowflake.ID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	return d.memberChannel, nil
}

func (d *stubDirectory) RenameChannel(_ context.Context, _ snowflake.ID, name string) error {
	if err := d.record(); err != nil {
		return err
	}
	d.name = name
	return nil
}

func (d *stubDirectory) SetPermissionOverwrites(context.Context, snowflake.ID, []domain.PermissionOverwrite) error {
	return d.record()
}

func (d *stubDirectory) SetUserLimit(_ context.Context, _ snowflake.ID, limit domain.UserLimit) error {
	if err := d.record(); err != nil {
		return err
	}
	d.limit = &limit
	return nil
}

func (d *stubDirectory) CurrentUserID(context.Context) (snowflake.ID, error) {
	return 42, nil
}

var _ ports.ChannelDirectory = (*stubDirectory)(nil)

// newCommandInteraction builds a guild slash command interaction from user 2
// in guild 1.
func newCommandInteraction(
	name string,
	options ...*discordgo.ApplicationCommandInteractionDataOption,
) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "1",
			Member:  &discordgo.Member{User: &discordgo.User{ID: "2"}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}

// newDMInteraction builds a slash command interaction sent outside a guild.
func newDMInteraction(
	name string,
	options ...*discordgo.ApplicationCommandInteractionDataOption,
) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			User: &discordgo.User{ID: "2"},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}
