package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/application/ports"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
)

// CreatePrimaryInput contains the input for the CreatePrimary use case.
type CreatePrimaryInput struct {
	GuildID snowflake.ID
	// ParentID is an optional category for the new channel.
	ParentID snowflake.ID
}

// CreatePrimaryOutput contains the result of the CreatePrimary use case.
type CreatePrimaryOutput struct {
	ChannelID snowflake.ID
	Name      string
}

// ProvisioningService creates primary channels.
type ProvisioningService struct {
	registry           domain.ChannelRegistry
	directory          ports.ChannelDirectory
	recorder           ports.LifecycleRecorder
	primaryChannelName string
}

// NewProvisioningService creates a new ProvisioningService.
func NewProvisioningService(
	registry domain.ChannelRegistry,
	directory ports.ChannelDirectory,
	recorder ports.LifecycleRecorder,
	primaryChannelName string,
) *ProvisioningService {
	if recorder == nil {
		recorder = ports.NopLifecycleRecorder{}
	}
	return &ProvisioningService{
		registry:           registry,
		directory:          directory,
		recorder:           recorder,
		primaryChannelName: primaryChannelName,
	}
}

// CreatePrimary creates a voice channel and registers it as primary. If
// registration fails the channel is left in place unmanaged.
func (s *ProvisioningService) CreatePrimary(
	ctx context.Context,
	input CreatePrimaryInput,
) (*CreatePrimaryOutput, error) {
	if input.GuildID == 0 {
		return nil, ErrNotInGuildContext
	}

	channelID, err := s.directory.CreateVoiceChannel(ctx, input.GuildID, ports.VoiceChannelSpec{
		Name:     s.primaryChannelName,
		ParentID: input.ParentID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create primary channel: %w", ErrDirectoryOperationFailed, err)
	}

	if err := s.registry.Insert(ctx, channelID, domain.ChannelKindPrimary); err != nil {
		return nil, fmt.Errorf("%w: register primary channel %d: %w",
			ErrRegistryOperationFailed, channelID, err)
	}
	s.recorder.PrimaryChannelProvisioned()

	slog.Info("created primary channel", "guild", input.GuildID, "channel", channelID)

	return &CreatePrimaryOutput{ChannelID: channelID, Name: s.primaryChannelName}, nil
}
