package domain

import (
	"context"
	"errors"

	"github.com/disgoorg/snowflake/v2"
)

var (
	// ErrDuplicateRecord is returned when inserting an id that is already
	// registered, under any kind.
	ErrDuplicateRecord = errors.New("channel is already registered")

	// ErrInvalidKind is returned for a ChannelKind outside the known set.
	ErrInvalidKind = errors.New("invalid channel kind")
)

// ChannelRecord is a registry entry classifying a managed channel.
type ChannelRecord struct {
	ID   snowflake.ID
	Kind ChannelKind
}

// ChannelRegistry is the durable mapping of channel id to ChannelKind.
// A given id is registered under at most one kind at a time.
// Implementations must be safe for concurrent use; concurrent inserts of
// the same id must not both succeed.
type ChannelRegistry interface {
	// Insert registers id as kind. Returns ErrDuplicateRecord if id is
	// already registered under any kind.
	Insert(ctx context.Context, id snowflake.ID, kind ChannelKind) error

	// Exists reports whether id is registered as kind.
	Exists(ctx context.Context, id snowflake.ID, kind ChannelKind) (bool, error)

	// Delete removes id from kind. Deleting an absent record is not an error.
	Delete(ctx context.Context, id snowflake.ID, kind ChannelKind) error
}
