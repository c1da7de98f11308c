package domain

import "github.com/disgoorg/snowflake/v2"

// Permission is a platform permission bit set.
type Permission int64

// PermissionConnect allows joining a voice channel.
const PermissionConnect Permission = 1 << 20

// OverwriteTarget identifies what a PermissionOverwrite applies to.
type OverwriteTarget int

const (
	OverwriteTargetRole OverwriteTarget = iota
	OverwriteTargetMember
)

// PermissionOverwrite grants or denies permissions on a channel for one role
// or member.
type PermissionOverwrite struct {
	TargetID   snowflake.ID
	TargetType OverwriteTarget
	Allow      Permission
	Deny       Permission
}

// PrivateOverwrites returns the overwrite set that hides a channel from
// everyone while keeping the bot able to manage it. The default role of a
// guild shares the guild's id.
func PrivateOverwrites(guildID, botUserID snowflake.ID) []PermissionOverwrite {
	return []PermissionOverwrite{
		{
			TargetID:   guildID,
			TargetType: OverwriteTargetRole,
			Deny:       PermissionConnect,
		},
		{
			TargetID:   botUserID,
			TargetType: OverwriteTargetMember,
			Allow:      PermissionConnect,
		},
	}
}

// PublicOverwrites returns the overwrite set that reopens a channel: a
// neutral entry for the default role.
func PublicOverwrites(guildID snowflake.ID) []PermissionOverwrite {
	return []PermissionOverwrite{
		{
			TargetID:   guildID,
			TargetType: OverwriteTargetRole,
		},
	}
}
