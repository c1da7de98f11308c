package discord

import (
	"context"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/application/usecases"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
)

type routedStates struct {
	mu     sync.Mutex
	joins  []domain.MembershipState
	leaves []domain.MembershipState
}

func newRecordingEventHandlers() (*EventHandlers, *routedStates) {
	routed := &routedStates{}
	router := usecases.NewMembershipRouter(
		func(_ context.Context, state domain.MembershipState) error {
			routed.mu.Lock()
			defer routed.mu.Unlock()
			routed.joins = append(routed.joins, state)
			return nil
		},
		func(_ context.Context, state domain.MembershipState) error {
			routed.mu.Lock()
			defer routed.mu.Unlock()
			routed.leaves = append(routed.leaves, state)
			return nil
		},
		nil,
	)
	return NewEventHandlers(router), routed
}

func TestEventHandlers_VoiceStateUpdate(t *testing.T) {
	tests := []struct {
		name            string
		event           *discordgo.VoiceStateUpdate
		wantJoinChannel string
		wantLeaves      int
	}{
		{
			name: "first connection",
			event: &discordgo.VoiceStateUpdate{
				VoiceState: &discordgo.VoiceState{GuildID: "1", UserID: "2", ChannelID: "10"},
			},
			wantJoinChannel: "10",
		},
		{
			name: "move between channels",
			event: &discordgo.VoiceStateUpdate{
				VoiceState:   &discordgo.VoiceState{GuildID: "1", UserID: "2", ChannelID: "10"},
				BeforeUpdate: &discordgo.VoiceState{GuildID: "1", UserID: "2", ChannelID: "20"},
			},
			wantJoinChannel: "10",
			wantLeaves:      1,
		},
		{
			name: "disconnect",
			event: &discordgo.VoiceStateUpdate{
				VoiceState:   &discordgo.VoiceState{GuildID: "1", UserID: "2"},
				BeforeUpdate: &discordgo.VoiceState{GuildID: "1", UserID: "2", ChannelID: "20"},
			},
			wantLeaves: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlers, routed := newRecordingEventHandlers()

			handlers.HandleEvent(nil, tt.event)

			if len(routed.joins) != 1 {
				t.Fatalf("expected join handler to run once, got %d", len(routed.joins))
			}
			join := routed.joins[0]
			if tt.wantJoinChannel == "" {
				if join.IsConnected() {
					t.Errorf("expected disconnected state, got channel %d", *join.ChannelID)
				}
			} else if !join.IsConnected() || join.ChannelID.String() != tt.wantJoinChannel {
				t.Errorf("expected join channel %s, got %v", tt.wantJoinChannel, join.ChannelID)
			}

			if len(routed.leaves) != tt.wantLeaves {
				t.Fatalf("expected %d leave calls, got %d", tt.wantLeaves, len(routed.leaves))
			}
			if tt.wantLeaves == 1 && routed.leaves[0].ChannelID.String() != "20" {
				t.Errorf("expected leave channel 20, got %v", routed.leaves[0].ChannelID)
			}
		})
	}
}

func TestEventHandlers_IgnoresOtherEvents(t *testing.T) {
	handlers, routed := newRecordingEventHandlers()

	events := []any{
		&discordgo.MessageCreate{},
		&discordgo.Ready{},
		&discordgo.GuildCreate{},
		&discordgo.VoiceStateUpdate{},
	}
	for _, event := range events {
		handlers.HandleEvent(nil, event)
	}

	if len(routed.joins) != 0 || len(routed.leaves) != 0 {
		t.Errorf("expected no routed changes, got %d joins and %d leaves",
			len(routed.joins), len(routed.leaves))
	}
}

func TestEventHandlers_MalformedIDs(t *testing.T) {
	handlers, routed := newRecordingEventHandlers()

	handlers.HandleEvent(nil, &discordgo.VoiceStateUpdate{
		VoiceState: &discordgo.VoiceState{GuildID: "not-a-snowflake", UserID: "2", ChannelID: "10"},
	})

	if len(routed.joins) != 0 {
		t.Errorf("expected malformed event to be dropped, got %d joins", len(routed.joins))
	}
}
