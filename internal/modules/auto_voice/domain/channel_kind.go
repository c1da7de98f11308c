package domain

// ChannelKind classifies a managed voice channel.
type ChannelKind string

const (
	// ChannelKindPrimary is a persistent entry channel. Joining it spawns a
	// temporary sibling.
	ChannelKindPrimary ChannelKind = "primary"
	// ChannelKindTemporary is a disposable channel that is deleted once empty.
	ChannelKindTemporary ChannelKind = "temporary"
)

// IsValid reports whether k is one of the known kinds.
func (k ChannelKind) IsValid() bool {
	switch k {
	case ChannelKindPrimary, ChannelKindTemporary:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k ChannelKind) String() string {
	return string(k)
}
