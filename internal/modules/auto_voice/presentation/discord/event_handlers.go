package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/application/usecases"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
)

// EventHandlers is the gateway ingestion point for the auto voice module.
type EventHandlers struct {
	router *usecases.MembershipRouter
}

// NewEventHandlers creates a new EventHandlers.
func NewEventHandlers(router *usecases.MembershipRouter) *EventHandlers {
	return &EventHandlers{
		router: router,
	}
}

// HandleEvent receives every gateway event. Only voice state updates are
// forwarded; every other event is ignored.
func (h *EventHandlers) HandleEvent(_ *discordgo.Session, event any) {
	switch e := event.(type) {
	case *discordgo.VoiceStateUpdate:
		h.handleVoiceStateUpdate(e)
	default:
		// Not a membership change.
	}
}

func (h *EventHandlers) handleVoiceStateUpdate(event *discordgo.VoiceStateUpdate) {
	if event.VoiceState == nil {
		return
	}

	change, err := toMembershipChange(event)
	if err != nil {
		slog.Error("failed to parse voice state update",
			"guild", event.GuildID,
			"user", event.UserID,
			"error", err,
		)
		return
	}

	h.router.Route(context.Background(), change)
}

func toMembershipChange(event *discordgo.VoiceStateUpdate) (domain.MembershipChange, error) {
	after, err := toMembershipState(event.VoiceState)
	if err != nil {
		return domain.MembershipChange{}, err
	}

	change := domain.MembershipChange{After: after}
	if event.BeforeUpdate != nil {
		before, err := toMembershipState(event.BeforeUpdate)
		if err != nil {
			return domain.MembershipChange{}, fmt.Errorf("previous state: %w", err)
		}
		change.Before = &before
	}

	return change, nil
}

// toMembershipState converts a voice state. An empty channel id means the
// member is disconnected.
func toMembershipState(vs *discordgo.VoiceState) (domain.MembershipState, error) {
	guildID, err := snowflake.Parse(vs.GuildID)
	if err != nil {
		return domain.MembershipState{}, fmt.Errorf("guild id %q: %w", vs.GuildID, err)
	}

	userID, err := snowflake.Parse(vs.UserID)
	if err != nil {
		return domain.MembershipState{}, fmt.Errorf("user id %q: %w", vs.UserID, err)
	}

	state := domain.MembershipState{GuildID: guildID, UserID: userID}
	if vs.ChannelID != "" {
		channelID, err := snowflake.Parse(vs.ChannelID)
		if err != nil {
			return domain.MembershipState{}, fmt.Errorf("channel id %q: %w", vs.ChannelID, err)
		}
		state.ChannelID = &channelID
	}

	return state, nil
}
