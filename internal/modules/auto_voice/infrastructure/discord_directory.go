package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/application/ports"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
)

// ErrBotUserUnknown is returned when the bot's own user is not yet known,
// i.e. before the gateway Ready event.
var ErrBotUserUnknown = errors.New("bot user is not known yet")

// DiscordSession is the subset of *discordgo.Session used by DiscordDirectory.
type DiscordSession interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildChannelCreateComplex(
		guildID string,
		data discordgo.GuildChannelCreateData,
		options ...discordgo.RequestOption,
	) (*discordgo.Channel, error)
	ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelEdit(
		channelID string,
		data *discordgo.ChannelEdit,
		options ...discordgo.RequestOption,
	) (*discordgo.Channel, error)
	GuildMemberMove(
		guildID string,
		userID string,
		channelID *string,
		options ...discordgo.RequestOption,
	) error
	RequestWithBucketID(
		method, urlStr string,
		data any,
		bucketID string,
		options ...discordgo.RequestOption,
	) ([]byte, error)
}

// Ensure *discordgo.Session satisfies DiscordSession.
var _ DiscordSession = (*discordgo.Session)(nil)

// DiscordDirectory implements ports.ChannelDirectory on top of the Discord
// REST API and the session's gateway state cache.
//
// Voice occupancy is read from the state cache. discordgo applies each
// VoiceStateUpdate to the cache before invoking event handlers, so the cache
// already reflects every membership event delivered so far.
type DiscordDirectory struct {
	session DiscordSession
	state   *discordgo.State
}

// NewDiscordDirectory creates a new DiscordDirectory.
func NewDiscordDirectory(session DiscordSession, state *discordgo.State) *DiscordDirectory {
	return &DiscordDirectory{
		session: session,
		state:   state,
	}
}

// ChannelParent returns the category containing the channel, or 0.
func (d *DiscordDirectory) ChannelParent(ctx context.Context, channelID snowflake.ID) (snowflake.ID, error) {
	channel, err := d.state.Channel(channelID.String())
	if err != nil {
		channel, err = d.session.Channel(channelID.String(), discordgo.WithContext(ctx))
		if err != nil {
			return 0, err
		}
	}

	if channel.ParentID == "" {
		return 0, nil
	}
	return snowflake.Parse(channel.ParentID)
}

// CreateVoiceChannel creates a voice channel and returns its id.
func (d *DiscordDirectory) CreateVoiceChannel(
	ctx context.Context,
	guildID snowflake.ID,
	spec ports.VoiceChannelSpec,
) (snowflake.ID, error) {
	data := discordgo.GuildChannelCreateData{
		Name:                 spec.Name,
		Type:                 discordgo.ChannelTypeGuildVoice,
		PermissionOverwrites: toDiscordOverwrites(spec.Overwrites),
	}
	if spec.ParentID != 0 {
		data.ParentID = spec.ParentID.String()
	}

	channel, err := d.session.GuildChannelCreateComplex(
		guildID.String(),
		data,
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return 0, err
	}

	return snowflake.Parse(channel.ID)
}

// DeleteChannel deletes a channel.
func (d *DiscordDirectory) DeleteChannel(ctx context.Context, channelID snowflake.ID) error {
	_, err := d.session.ChannelDelete(channelID.String(), discordgo.WithContext(ctx))
	return err
}

// ChannelOccupants returns the users connected to a voice channel.
func (d *DiscordDirectory) ChannelOccupants(
	_ context.Context,
	guildID, channelID snowflake.ID,
) ([]snowflake.ID, error) {
	voiceStates, err := d.voiceStates(guildID)
	if err != nil {
		return nil, err
	}

	occupants := make([]snowflake.ID, 0)
	for _, vs := range voiceStates {
		if vs.ChannelID != channelID.String() {
			continue
		}
		userID, err := snowflake.Parse(vs.UserID)
		if err != nil {
			return nil, fmt.Errorf("parse user id %q: %w", vs.UserID, err)
		}
		occupants = append(occupants, userID)
	}

	return occupants, nil
}

// MoveMember relocates a connected member into a voice channel.
func (d *DiscordDirectory) MoveMember(ctx context.Context, guildID, userID, channelID snowflake.ID) error {
	target := channelID.String()
	return d.session.GuildMemberMove(
		guildID.String(),
		userID.String(),
		&target,
		discordgo.WithContext(ctx),
	)
}

// FindMemberVoiceChannel returns the voice channel containing the user, or 0.
func (d *DiscordDirectory) FindMemberVoiceChannel(
	_ context.Context,
	guildID, userID snowflake.ID,
) (snowflake.ID, error) {
	voiceStates, err := d.voiceStates(guildID)
	if err != nil {
		return 0, err
	}

	for _, vs := range voiceStates {
		if vs.UserID == userID.String() && vs.ChannelID != "" {
			return snowflake.Parse(vs.ChannelID)
		}
	}

	return 0, nil
}

// RenameChannel sets a channel's name.
func (d *DiscordDirectory) RenameChannel(ctx context.Context, channelID snowflake.ID, name string) error {
	_, err := d.session.ChannelEdit(
		channelID.String(),
		&discordgo.ChannelEdit{Name: name},
		discordgo.WithContext(ctx),
	)
	return err
}

// SetPermissionOverwrites replaces a channel's permission overwrites.
func (d *DiscordDirectory) SetPermissionOverwrites(
	ctx context.Context,
	channelID snowflake.ID,
	overwrites []domain.PermissionOverwrite,
) error {
	_, err := d.session.ChannelEdit(
		channelID.String(),
		&discordgo.ChannelEdit{PermissionOverwrites: toDiscordOverwrites(overwrites)},
		discordgo.WithContext(ctx),
	)
	return err
}

// SetUserLimit sets a voice channel's occupancy cap.
//
// discordgo.ChannelEdit omits a zero UserLimit, which makes it impossible to
// clear the cap, so the PATCH is sent directly.
func (d *DiscordDirectory) SetUserLimit(
	ctx context.Context,
	channelID snowflake.ID,
	limit domain.UserLimit,
) error {
	endpoint := discordgo.EndpointChannel(channelID.String())
	_, err := d.session.RequestWithBucketID(
		http.MethodPatch,
		endpoint,
		map[string]any{"user_limit": int(limit)},
		endpoint,
		discordgo.WithContext(ctx),
	)
	return err
}

// CurrentUserID returns the bot's own user id.
func (d *DiscordDirectory) CurrentUserID(_ context.Context) (snowflake.ID, error) {
	d.state.RLock()
	user := d.state.User
	d.state.RUnlock()

	if user == nil {
		return 0, ErrBotUserUnknown
	}
	return snowflake.Parse(user.ID)
}

// voiceStates returns a snapshot of the guild's cached voice states.
func (d *DiscordDirectory) voiceStates(guildID snowflake.ID) ([]discordgo.VoiceState, error) {
	guild, err := d.state.Guild(guildID.String())
	if err != nil {
		return nil, fmt.Errorf("guild %d: %w", guildID, err)
	}

	d.state.RLock()
	defer d.state.RUnlock()

	snapshot := make([]discordgo.VoiceState, 0, len(guild.VoiceStates))
	for _, vs := range guild.VoiceStates {
		snapshot = append(snapshot, *vs)
	}
	return snapshot, nil
}

func toDiscordOverwrites(overwrites []domain.PermissionOverwrite) []*discordgo.PermissionOverwrite {
	if len(overwrites) == 0 {
		return nil
	}

	result := make([]*discordgo.PermissionOverwrite, 0, len(overwrites))
	for _, o := range overwrites {
		targetType := discordgo.PermissionOverwriteTypeRole
		if o.TargetType == domain.OverwriteTargetMember {
			targetType = discordgo.PermissionOverwriteTypeMember
		}
		result = append(result, &discordgo.PermissionOverwrite{
			ID:    o.TargetID.String(),
			Type:  targetType,
			Allow: int64(o.Allow),
			Deny:  int64(o.Deny),
		})
	}
	return result
}

// Ensure DiscordDirectory implements ports.ChannelDirectory.
var _ ports.ChannelDirectory = (*DiscordDirectory)(nil)
