package auto_voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/sglre6355/tempvoice/internal/bot"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/application/ports"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/application/usecases"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/infrastructure"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/presentation/discord"
)

const metricsShutdownTimeout = 5 * time.Second

// ErrSessionRequired is returned by Init when no Discord session is provided.
var ErrSessionRequired = errors.New("auto_voice module requires a Discord session")

func init() {
	bot.Register(&AutoVoiceModule{})
}

// Compile-time interface checks.
var (
	_ bot.ConfigurableModule = (*AutoVoiceModule)(nil)
	_ bot.IntentProvider     = (*AutoVoiceModule)(nil)
)

// AutoVoiceModule creates a temporary voice channel for every member who
// joins a primary channel and removes it once everyone has left.
type AutoVoiceModule struct {
	config          *Config
	commandHandlers *discord.CommandHandlers
	eventHandlers   *discord.EventHandlers

	registry      domain.ChannelRegistry
	closeRegistry func() error
	metricsServer *infrastructure.MetricsServer
}

// Name returns the module name.
func (m *AutoVoiceModule) Name() string {
	return "auto_voice"
}

// Commands returns the slash commands for this module.
func (m *AutoVoiceModule) Commands() []*discordgo.ApplicationCommand {
	return discord.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *AutoVoiceModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		discord.CommandCreate:  m.commandHandlers.HandleCreate,
		discord.CommandRename:  m.commandHandlers.HandleRename,
		discord.CommandPrivate: m.commandHandlers.HandlePrivate,
		discord.CommandPublic:  m.commandHandlers.HandlePublic,
		discord.CommandLimit:   m.commandHandlers.HandleLimit,
		discord.CommandUnlimit: m.commandHandlers.HandleUnlimit,
	}
}

// Intents requests voice state events, which also populate the voice states
// in the session's state cache.
func (m *AutoVoiceModule) Intents() discordgo.Intent {
	return discordgo.IntentsGuildVoiceStates
}

// EventHandlers returns the event handlers for this module.
func (m *AutoVoiceModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		m.eventHandlers.HandleEvent,
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *AutoVoiceModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *AutoVoiceModule) Init(deps bot.ModuleDependencies) error {
	if deps.Session == nil {
		return ErrSessionRequired
	}
	if m.config == nil {
		if err := m.LoadConfig(); err != nil {
			return err
		}
	}

	if err := m.openRegistry(); err != nil {
		return err
	}

	recorder, err := m.startMetrics()
	if err != nil {
		return multierr.Append(err, m.Shutdown())
	}

	directory := infrastructure.NewDiscordDirectory(deps.Session, deps.Session.State)

	lifecycle := usecases.NewLifecycleService(
		m.registry,
		directory,
		recorder,
		m.config.TemporaryChannelName,
	)
	router := usecases.NewMembershipRouter(lifecycle.HandleJoin, lifecycle.HandleLeave, recorder)

	provisioning := usecases.NewProvisioningService(
		m.registry,
		directory,
		recorder,
		m.config.PrimaryChannelName,
	)
	attributes := usecases.NewChannelAttributeService(m.registry, directory)

	m.commandHandlers = discord.NewCommandHandlers(provisioning, attributes)
	m.eventHandlers = discord.NewEventHandlers(router)

	slog.Info("auto_voice module initialized",
		"registry_backend", m.config.RegistryBackend,
		"metrics_enabled", m.metricsServer != nil,
	)

	return nil
}

func (m *AutoVoiceModule) openRegistry() error {
	switch m.config.RegistryBackend {
	case RegistryBackendMemory:
		slog.Warn("using in-memory channel registry, records will not survive a restart")
		m.registry = infrastructure.NewMemoryRegistry()
		m.closeRegistry = nil
	default:
		registry, err := infrastructure.OpenSQLiteRegistry(infrastructure.SQLiteRegistryConfig{
			Path:     m.config.DatabasePath,
			PoolSize: m.config.DatabasePoolSize,
		})
		if err != nil {
			return err
		}
		m.registry = registry
		m.closeRegistry = registry.Close
		logRegistryContents(registry)
	}
	return nil
}

func logRegistryContents(registry *infrastructure.SQLiteRegistry) {
	ctx := context.Background()
	for _, kind := range []domain.ChannelKind{domain.ChannelKindPrimary, domain.ChannelKindTemporary} {
		records, err := registry.List(ctx, kind)
		if err != nil {
			slog.Warn("failed to list channel registry", "kind", kind.String(), "error", err)
			continue
		}
		slog.Info("loaded channel registry", "kind", kind.String(), "count", len(records))
	}
}

func (m *AutoVoiceModule) startMetrics() (ports.LifecycleRecorder, error) {
	if m.config.MetricsAddress == "" {
		return ports.NopLifecycleRecorder{}, nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := infrastructure.NewPrometheusRecorder(reg)

	server, err := infrastructure.StartMetricsServer(m.config.MetricsAddress, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to start metrics server: %w", err)
	}
	m.metricsServer = server

	return recorder, nil
}

// Shutdown cleans up module resources.
func (m *AutoVoiceModule) Shutdown() error {
	var err error

	if m.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		err = multierr.Append(err, m.metricsServer.Shutdown(ctx))
		m.metricsServer = nil
	}

	if m.closeRegistry != nil {
		err = multierr.Append(err, m.closeRegistry())
		m.closeRegistry = nil
	}

	return err
}
