package domain

import (
	"fmt"
	"time"
)

// PingResult represents the result of a ping operation.
type PingResult struct {
	Message string
	// Latency is the gateway heartbeat round trip; zero when unknown.
	Latency   time.Duration
	Timestamp time.Time
}

// NewPingResult creates a new PingResult for the given gateway latency.
func NewPingResult(latency time.Duration) *PingResult {
	message := "Pong!"
	if latency > 0 {
		message = fmt.Sprintf("Pong! (%dms)", latency.Milliseconds())
	}

	return &PingResult{
		Message:   message,
		Latency:   latency,
		Timestamp: time.Now(),
	}
}
