package ports

// LifecycleRecorder observes channel lifecycle outcomes.
type LifecycleRecorder interface {
	PrimaryChannelProvisioned()
	TemporaryChannelCreated()
	TemporaryChannelDeleted()
	HandlerFailed(handler string)
}

// NopLifecycleRecorder discards all observations.
type NopLifecycleRecorder struct{}

func (NopLifecycleRecorder) PrimaryChannelProvisioned() {}
func (NopLifecycleRecorder) TemporaryChannelCreated()   {}
func (NopLifecycleRecorder) TemporaryChannelDeleted()   {}
func (NopLifecycleRecorder) HandlerFailed(string)       {}

var _ LifecycleRecorder = NopLifecycleRecorder{}
