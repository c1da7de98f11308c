package usecases

import "errors"

// Errors for the auto voice module.
var (
	// ErrNotInGuildContext is returned when a command is invoked outside a guild.
	ErrNotInGuildContext = errors.New("this command can only be used in a server")

	// ErrNotInVoiceChannel is returned when the invoking member is not in voice.
	ErrNotInVoiceChannel = errors.New("you must be in a voice channel")

	// ErrNotModifiable is returned when the target channel is not temporary.
	ErrNotModifiable = errors.New("permanent channels cannot be modified")

	// ErrDirectoryOperationFailed is returned when a platform call fails.
	ErrDirectoryOperationFailed = errors.New("channel directory operation failed")

	// ErrRegistryOperationFailed is returned when the channel registry fails.
	ErrRegistryOperationFailed = errors.New("channel registry operation failed")

	// ErrMalformedNotification is returned for a leave notification without
	// an origin channel.
	ErrMalformedNotification = errors.New("membership notification has no origin channel")
)
