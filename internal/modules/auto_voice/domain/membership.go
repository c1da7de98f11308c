package domain

import "github.com/disgoorg/snowflake/v2"

// MembershipState is a member's voice connection at one point in time.
type MembershipState struct {
	GuildID snowflake.ID
	// ChannelID is nil when the member is not connected to voice.
	ChannelID *snowflake.ID
	UserID    snowflake.ID
}

// IsConnected reports whether the state carries a voice channel.
func (s MembershipState) IsConnected() bool {
	return s.ChannelID != nil
}

// MembershipChange is a single voice state transition for one member.
type MembershipChange struct {
	// Before is nil when the previous state is unknown.
	Before *MembershipState
	After  MembershipState
}
