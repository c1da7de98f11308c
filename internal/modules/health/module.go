package health

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/tempvoice/internal/bot"
	"github.com/sglre6355/tempvoice/internal/modules/health/application"
	"github.com/sglre6355/tempvoice/internal/modules/health/presentation"
)

func init() {
	bot.Register(&HealthModule{})
}

// HealthModule provides the /ping liveness command.
type HealthModule struct {
	pingHandler *presentation.PingHandler
}

// Name returns the module name.
func (m *HealthModule) Name() string {
	return "health"
}

// Commands returns the slash commands for this module.
func (m *HealthModule) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check that the bot is responsive",
		},
	}
}

// CommandHandlers returns the command handlers for this module.
func (m *HealthModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"ping": m.pingHandler.Handle,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *HealthModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *HealthModule) Init(deps bot.ModuleDependencies) error {
	var latency application.LatencyFunc
	if deps.Session != nil {
		session := deps.Session
		latency = func() time.Duration { return session.HeartbeatLatency() }
	}

	m.pingHandler = presentation.NewPingHandler(application.NewPingInteractor(latency))
	return nil
}

// Shutdown cleans up module resources.
func (m *HealthModule) Shutdown() error {
	return nil
}
