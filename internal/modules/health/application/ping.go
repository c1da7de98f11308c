package application

import (
	"time"

	"github.com/sglre6355/tempvoice/internal/modules/health/domain"
)

// LatencyFunc reports the current gateway latency.
type LatencyFunc func() time.Duration

// PingInteractor handles the ping use case.
type PingInteractor struct {
	latency LatencyFunc
}

// NewPingInteractor creates a new PingInteractor. A nil latency reports
// zero.
func NewPingInteractor(latency LatencyFunc) *PingInteractor {
	if latency == nil {
		latency = func() time.Duration { return 0 }
	}
	return &PingInteractor{latency: latency}
}

// Execute performs the ping operation and returns the result.
func (p *PingInteractor) Execute() *domain.PingResult {
	return domain.NewPingResult(p.latency())
}
