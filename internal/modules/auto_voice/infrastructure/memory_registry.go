package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
)

// MemoryRegistry is an in-memory implementation of ChannelRegistry. Records
// do not survive a restart.
type MemoryRegistry struct {
	mu      sync.RWMutex
	records map[snowflake.ID]domain.ChannelKind
}

// NewMemoryRegistry creates a new MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		records: make(map[snowflake.ID]domain.ChannelKind),
	}
}

// Insert registers id as kind.
func (r *MemoryRegistry) Insert(_ context.Context, id snowflake.ID, kind domain.ChannelKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; ok {
		return fmt.Errorf("%w: %d", domain.ErrDuplicateRecord, id)
	}
	r.records[id] = kind
	return nil
}

// Exists reports whether id is registered as kind.
func (r *MemoryRegistry) Exists(_ context.Context, id snowflake.ID, kind domain.ChannelKind) (bool, error) {
	if !kind.IsValid() {
		return false, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.records[id]
	return ok && stored == kind, nil
}

// Delete removes id from kind.
func (r *MemoryRegistry) Delete(_ context.Context, id snowflake.ID, kind domain.ChannelKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, ok := r.records[id]; ok && stored == kind {
		delete(r.records, id)
	}
	return nil
}

// Count returns the number of records (for testing/monitoring).
func (r *MemoryRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.records)
}

// Ensure MemoryRegistry implements ChannelRegistry.
var _ domain.ChannelRegistry = (*MemoryRegistry)(nil)
