package usecases

import (
	"context"
	"slices"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/application/ports"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
)

func channelPtr(id snowflake.ID) *snowflake.ID {
	return &id
}

type mockRegistry struct {
	mu      sync.Mutex
	records map[snowflake.ID]domain.ChannelKind

	insertErr error
	existsErr error
	deleteErr error

	deleteCalls int
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{records: make(map[snowflake.ID]domain.ChannelKind)}
}

func (m *mockRegistry) Insert(_ context.Context, id snowflake.ID, kind domain.ChannelKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	if _, ok := m.records[id]; ok {
		return domain.ErrDuplicateRecord
	}
	m.records[id] = kind
	return nil
}

func (m *mockRegistry) Exists(_ context.Context, id snowflake.ID, kind domain.ChannelKind) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existsErr != nil {
		return false, m.existsErr
	}
	stored, ok := m.records[id]
	return ok && stored == kind, nil
}

func (m *mockRegistry) Delete(_ context.Context, id snowflake.ID, kind domain.ChannelKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if stored, ok := m.records[id]; ok && stored == kind {
		delete(m.records, id)
	}
	return nil
}

func (m *mockRegistry) kindOf(id snowflake.ID) (domain.ChannelKind, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kind, ok := m.records[id]
	return kind, ok
}

func (m *mockRegistry) count(kind domain.ChannelKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, k := range m.records {
		if k == kind {
			n++
		}
	}
	return n
}

type createdChannel struct {
	ID      snowflake.ID
	GuildID snowflake.ID
	Spec    ports.VoiceChannelSpec
}

type memberMove struct {
	GuildID   snowflake.ID
	UserID    snowflake.ID
	ChannelID snowflake.ID
}

type mockDirectory struct {
	mu sync.Mutex

	nextID    snowflake.ID
	botID     snowflake.ID
	parents   map[snowflake.ID]snowflake.ID
	occupants map[snowflake.ID][]snowflake.ID

	created    []createdChannel
	deleted    []snowflake.ID
	moves      []memberMove
	names      map[snowflake.ID]string
	overwrites map[snowflake.ID][]domain.PermissionOverwrite
	limits     map[snowflake.ID]domain.UserLimit
	mutations  int

	parentErr      error
	createErr      error
	deleteErr      error
	occupantsErr   error
	moveErr        error
	findErr        error
	renameErr      error
	overwritesErr  error
	limitErr       error
	currentUserErr error

	// beforeDelete runs (without the lock held) right before a deletion.
	beforeDelete func()
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		nextID:     1000,
		botID:      snowflake.ID(42),
		parents:    make(map[snowflake.ID]snowflake.ID),
		occupants:  make(map[snowflake.ID][]snowflake.ID),
		names:      make(map[snowflake.ID]string),
		overwrites: make(map[snowflake.ID][]domain.PermissionOverwrite),
		limits:     make(map[snowflake.ID]domain.UserLimit),
	}
}

// connect places a user in a channel, as the platform would before
// delivering the membership event.
func (m *mockDirectory) connect(userID, channelID snowflake.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(userID)
	m.occupants[channelID] = append(m.occupants[channelID], userID)
}

// disconnect removes a user from whatever channel they are in.
func (m *mockDirectory) disconnect(userID snowflake.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(userID)
}

func (m *mockDirectory) removeLocked(userID snowflake.ID) {
	for channelID, users := range m.occupants {
		m.occupants[channelID] = slices.DeleteFunc(users, func(id snowflake.ID) bool {
			return id == userID
		})
	}
}

func (m *mockDirectory) ChannelParent(_ context.Context, channelID snowflake.ID) (snowflake.ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.parentErr != nil {
		return 0, m.parentErr
	}
	return m.parents[channelID], nil
}

func (m *mockDirectory) CreateVoiceChannel(
	_ context.Context,
	guildID snowflake.ID,
	spec ports.VoiceChannelSpec,
) (snowflake.ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	id := m.nextID
	m.created = append(m.created, createdChannel{ID: id, GuildID: guildID, Spec: spec})
	m.occupants[id] = nil
	m.names[id] = spec.Name
	if spec.ParentID != 0 {
		m.parents[id] = spec.ParentID
	}
	m.mutations++
	return id, nil
}

func (m *mockDirectory) DeleteChannel(_ context.Context, channelID snowflake.ID) error {
	if m.beforeDelete != nil {
		m.beforeDelete()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, channelID)
	delete(m.occupants, channelID)
	m.mutations++
	return nil
}

func (m *mockDirectory) ChannelOccupants(
	_ context.Context,
	_, channelID snowflake.ID,
) ([]snowflake.ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.occupantsErr != nil {
		return nil, m.occupantsErr
	}
	return slices.Clone(m.occupants[channelID]), nil
}

func (m *mockDirectory) MoveMember(_ context.Context, guildID, userID, channelID snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.moveErr != nil {
		return m.moveErr
	}
	m.moves = append(m.moves, memberMove{GuildID: guildID, UserID: userID, ChannelID: channelID})
	m.removeLocked(userID)
	m.occupants[channelID] = append(m.occupants[channelID], userID)
	m.mutations++
	return nil
}

func (m *mockDirectory) FindMemberVoiceChannel(
	_ context.Context,
	_, userID snowflake.ID,
) (snowflake.ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return 0, m.findErr
	}
	for channelID, users := range m.occupants {
		if slices.Contains(users, userID) {
			return channelID, nil
		}
	}
	return 0, nil
}

func (m *mockDirectory) RenameChannel(_ context.Context, channelID snowflake.ID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.renameErr != nil {
		return m.renameErr
	}
	m.names[channelID] = name
	m.mutations++
	return nil
}

func (m *mockDirectory) SetPermissionOverwrites(
	_ context.Context,
	channelID snowflake.ID,
	overwrites []domain.PermissionOverwrite,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.overwritesErr != nil {
		return m.overwritesErr
	}
	m.overwrites[channelID] = overwrites
	m.mutations++
	return nil
}

func (m *mockDirectory) SetUserLimit(
	_ context.Context,
	channelID snowflake.ID,
	limit domain.UserLimit,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.limitErr != nil {
		return m.limitErr
	}
	m.limits[channelID] = limit
	m.mutations++
	return nil
}

func (m *mockDirectory) CurrentUserID(_ context.Context) (snowflake.ID, error) {
	if m.currentUserErr != nil {
		return 0, m.currentUserErr
	}
	return m.botID, nil
}

func (m *mockDirectory) mutationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutations
}

type mockRecorder struct {
	mu          sync.Mutex
	provisioned int
	created     int
	deleted     int
	failures    map[string]int
}

func newMockRecorder() *mockRecorder {
	return &mockRecorder{failures: make(map[string]int)}
}

func (m *mockRecorder) PrimaryChannelProvisioned() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.provisioned++
}

func (m *mockRecorder) TemporaryChannelCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *mockRecorder) TemporaryChannelDeleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted++
}

func (m *mockRecorder) HandlerFailed(handler string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[handler]++
}

func (m *mockRecorder) failureCount(handler string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures[handler]
}
