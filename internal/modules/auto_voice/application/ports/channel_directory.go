package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
)

// VoiceChannelSpec describes a voice channel to create.
type VoiceChannelSpec struct {
	Name string
	// ParentID is the category to place the channel in. Zero means none.
	ParentID   snowflake.ID
	Overwrites []domain.PermissionOverwrite
}

// ChannelDirectory is the platform's live view of guild channels and the
// operations that mutate them. Every call may fail and may block on the
// network. Implementations never serve occupancy from a cache that lags
// behind the membership events already delivered.
type ChannelDirectory interface {
	// ChannelParent returns the category containing the channel, or 0.
	ChannelParent(ctx context.Context, channelID snowflake.ID) (snowflake.ID, error)

	// CreateVoiceChannel creates a voice channel and returns its id.
	CreateVoiceChannel(
		ctx context.Context,
		guildID snowflake.ID,
		spec VoiceChannelSpec,
	) (snowflake.ID, error)

	// DeleteChannel deletes a channel.
	DeleteChannel(ctx context.Context, channelID snowflake.ID) error

	// ChannelOccupants returns the users currently connected to a voice channel.
	ChannelOccupants(ctx context.Context, guildID, channelID snowflake.ID) ([]snowflake.ID, error)

	// MoveMember relocates a connected member into a voice channel.
	MoveMember(ctx context.Context, guildID, userID, channelID snowflake.ID) error

	// FindMemberVoiceChannel returns the voice channel containing the user,
	// or 0 if the user is not connected anywhere in the guild.
	FindMemberVoiceChannel(ctx context.Context, guildID, userID snowflake.ID) (snowflake.ID, error)

	// RenameChannel sets a channel's name.
	RenameChannel(ctx context.Context, channelID snowflake.ID, name string) error

	// SetPermissionOverwrites replaces a channel's permission overwrites.
	SetPermissionOverwrites(
		ctx context.Context,
		channelID snowflake.ID,
		overwrites []domain.PermissionOverwrite,
	) error

	// SetUserLimit sets a voice channel's occupancy cap.
	SetUserLimit(ctx context.Context, channelID snowflake.ID, limit domain.UserLimit) error

	// CurrentUserID returns the bot's own user id.
	CurrentUserID(ctx context.Context) (snowflake.ID, error)
}
