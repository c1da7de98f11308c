package usecases

import (
	"context"
	"fmt"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/application/ports"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
)

// ChannelInput identifies the member invoking a channel command.
type ChannelInput struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
}

// ChannelOutput contains the temporary channel a command acted on.
type ChannelOutput struct {
	ChannelID snowflake.ID
}

// RenameInput contains the input for the Rename use case.
type RenameInput struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
	Name    string
}

// RenameOutput contains the result of the Rename use case.
type RenameOutput struct {
	ChannelID snowflake.ID
	Name      string
}

// SetLimitInput contains the input for the SetLimit use case.
type SetLimitInput struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
	Limit   domain.UserLimit
}

// ChannelAttributeService applies attribute changes to the temporary channel
// the invoking member occupies. Primary and unmanaged channels are never
// mutated.
type ChannelAttributeService struct {
	registry  domain.ChannelRegistry
	directory ports.ChannelDirectory
}

// NewChannelAttributeService creates a new ChannelAttributeService.
func NewChannelAttributeService(
	registry domain.ChannelRegistry,
	directory ports.ChannelDirectory,
) *ChannelAttributeService {
	return &ChannelAttributeService{
		registry:  registry,
		directory: directory,
	}
}

// Rename sets the channel name to the decorated form of input.Name.
func (s *ChannelAttributeService) Rename(
	ctx context.Context,
	input RenameInput,
) (*RenameOutput, error) {
	channelID, err := s.resolveTemporaryChannel(ctx, input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}

	name := domain.DecorateChannelName(input.Name)
	if err := s.directory.RenameChannel(ctx, channelID, name); err != nil {
		return nil, fmt.Errorf("%w: rename %d: %w", ErrDirectoryOperationFailed, channelID, err)
	}

	return &RenameOutput{ChannelID: channelID, Name: name}, nil
}

// SetPrivate denies connect to everyone except the bot.
func (s *ChannelAttributeService) SetPrivate(
	ctx context.Context,
	input ChannelInput,
) (*ChannelOutput, error) {
	channelID, err := s.resolveTemporaryChannel(ctx, input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}

	botID, err := s.directory.CurrentUserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve bot user: %w", ErrDirectoryOperationFailed, err)
	}

	overwrites := domain.PrivateOverwrites(input.GuildID, botID)
	if err := s.directory.SetPermissionOverwrites(ctx, channelID, overwrites); err != nil {
		return nil, fmt.Errorf("%w: make %d private: %w", ErrDirectoryOperationFailed, channelID, err)
	}

	return &ChannelOutput{ChannelID: channelID}, nil
}

// SetPublic removes the connect restriction.
func (s *ChannelAttributeService) SetPublic(
	ctx context.Context,
	input ChannelInput,
) (*ChannelOutput, error) {
	channelID, err := s.resolveTemporaryChannel(ctx, input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}

	overwrites := domain.PublicOverwrites(input.GuildID)
	if err := s.directory.SetPermissionOverwrites(ctx, channelID, overwrites); err != nil {
		return nil, fmt.Errorf("%w: make %d public: %w", ErrDirectoryOperationFailed, channelID, err)
	}

	return &ChannelOutput{ChannelID: channelID}, nil
}

// SetLimit sets the channel's occupancy cap. The limit is validated by the
// caller through domain.NewUserLimit.
func (s *ChannelAttributeService) SetLimit(
	ctx context.Context,
	input SetLimitInput,
) (*ChannelOutput, error) {
	channelID, err := s.resolveTemporaryChannel(ctx, input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.directory.SetUserLimit(ctx, channelID, input.Limit); err != nil {
		return nil, fmt.Errorf("%w: limit %d: %w", ErrDirectoryOperationFailed, channelID, err)
	}

	return &ChannelOutput{ChannelID: channelID}, nil
}

// ClearLimit removes the channel's occupancy cap.
func (s *ChannelAttributeService) ClearLimit(
	ctx context.Context,
	input ChannelInput,
) (*ChannelOutput, error) {
	return s.SetLimit(ctx, SetLimitInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
		Limit:   domain.Unlimited,
	})
}

// resolveTemporaryChannel finds the voice channel the user occupies and
// requires it to be registered as temporary.
func (s *ChannelAttributeService) resolveTemporaryChannel(
	ctx context.Context,
	guildID, userID snowflake.ID,
) (snowflake.ID, error) {
	if guildID == 0 {
		return 0, ErrNotInGuildContext
	}

	channelID, err := s.directory.FindMemberVoiceChannel(ctx, guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: find voice channel of %d: %w",
			ErrDirectoryOperationFailed, userID, err)
	}
	if channelID == 0 {
		return 0, ErrNotInVoiceChannel
	}

	isTemporary, err := s.registry.Exists(ctx, channelID, domain.ChannelKindTemporary)
	if err != nil {
		return 0, fmt.Errorf("%w: look up %d: %w", ErrRegistryOperationFailed, channelID, err)
	}
	if !isTemporary {
		return 0, ErrNotModifiable
	}

	return channelID, nil
}
