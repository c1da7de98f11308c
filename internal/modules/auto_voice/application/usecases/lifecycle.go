package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/application/ports"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
)

// LifecycleService creates temporary channels when members join a primary
// channel and deletes them once they empty.
//
// No transaction spans the directory and the registry. A channel created
// but not registered, or a record whose channel vanished, is left behind
// rather than rolled back.
type LifecycleService struct {
	registry             domain.ChannelRegistry
	directory            ports.ChannelDirectory
	recorder             ports.LifecycleRecorder
	temporaryChannelName string
}

// NewLifecycleService creates a new LifecycleService. temporaryChannelName is
// decorated before use.
func NewLifecycleService(
	registry domain.ChannelRegistry,
	directory ports.ChannelDirectory,
	recorder ports.LifecycleRecorder,
	temporaryChannelName string,
) *LifecycleService {
	if recorder == nil {
		recorder = ports.NopLifecycleRecorder{}
	}
	return &LifecycleService{
		registry:             registry,
		directory:            directory,
		recorder:             recorder,
		temporaryChannelName: domain.DecorateChannelName(temporaryChannelName),
	}
}

// HandleJoin reacts to a member's new voice state. Joining a primary channel
// creates a temporary sibling in the same category, registers it, and moves
// the member into it. A disconnected state is a no-op.
func (s *LifecycleService) HandleJoin(ctx context.Context, state domain.MembershipState) error {
	if !state.IsConnected() {
		return nil
	}
	primaryID := *state.ChannelID

	isPrimary, err := s.registry.Exists(ctx, primaryID, domain.ChannelKindPrimary)
	if err != nil {
		return fmt.Errorf("%w: look up primary channel %d: %w",
			ErrRegistryOperationFailed, primaryID, err)
	}
	if !isPrimary {
		return nil
	}

	parentID, err := s.directory.ChannelParent(ctx, primaryID)
	if err != nil {
		return fmt.Errorf("%w: resolve category of %d: %w",
			ErrDirectoryOperationFailed, primaryID, err)
	}

	temporaryID, err := s.directory.CreateVoiceChannel(ctx, state.GuildID, ports.VoiceChannelSpec{
		Name:     s.temporaryChannelName,
		ParentID: parentID,
	})
	if err != nil {
		return fmt.Errorf("%w: create temporary channel: %w", ErrDirectoryOperationFailed, err)
	}

	if err := s.registry.Insert(ctx, temporaryID, domain.ChannelKindTemporary); err != nil {
		return fmt.Errorf("%w: register temporary channel %d: %w",
			ErrRegistryOperationFailed, temporaryID, err)
	}
	s.recorder.TemporaryChannelCreated()

	slog.Info("created temporary channel",
		"guild", state.GuildID,
		"primary_channel", primaryID,
		"channel", temporaryID,
		"user", state.UserID,
	)

	if err := s.directory.MoveMember(ctx, state.GuildID, state.UserID, temporaryID); err != nil {
		return fmt.Errorf("%w: move member %d to %d: %w",
			ErrDirectoryOperationFailed, state.UserID, temporaryID, err)
	}

	return nil
}

// HandleLeave reacts to a member's previous voice state. Leaving a temporary
// channel that is now empty deletes the channel and then deregisters it.
//
// The occupant read and the deletion are not atomic. A member who joins in
// between is disconnected along with the channel; the deletion is not
// cancelled.
func (s *LifecycleService) HandleLeave(ctx context.Context, state domain.MembershipState) error {
	if !state.IsConnected() {
		return ErrMalformedNotification
	}
	channelID := *state.ChannelID

	isTemporary, err := s.registry.Exists(ctx, channelID, domain.ChannelKindTemporary)
	if err != nil {
		return fmt.Errorf("%w: look up temporary channel %d: %w",
			ErrRegistryOperationFailed, channelID, err)
	}
	if !isTemporary {
		return nil
	}

	occupants, err := s.directory.ChannelOccupants(ctx, state.GuildID, channelID)
	if err != nil {
		return fmt.Errorf("%w: count occupants of %d: %w",
			ErrDirectoryOperationFailed, channelID, err)
	}
	if len(occupants) > 0 {
		slog.Debug("temporary channel still occupied, keeping it",
			"guild", state.GuildID,
			"channel", channelID,
			"occupants", len(occupants),
		)
		return nil
	}

	if err := s.directory.DeleteChannel(ctx, channelID); err != nil {
		return fmt.Errorf("%w: delete temporary channel %d: %w",
			ErrDirectoryOperationFailed, channelID, err)
	}

	if err := s.registry.Delete(ctx, channelID, domain.ChannelKindTemporary); err != nil {
		return fmt.Errorf("%w: deregister temporary channel %d: %w",
			ErrRegistryOperationFailed, channelID, err)
	}
	s.recorder.TemporaryChannelDeleted()

	slog.Info("deleted temporary channel", "guild", state.GuildID, "channel", channelID)

	return nil
}
