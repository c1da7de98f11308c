package presentation

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/tempvoice/internal/bot"
	"github.com/sglre6355/tempvoice/internal/modules/health/application"
)

// PingHandler handles the /ping command.
type PingHandler struct {
	interactor *application.PingInteractor
}

// NewPingHandler creates a new PingHandler.
func NewPingHandler(interactor *application.PingInteractor) *PingHandler {
	return &PingHandler{
		interactor: interactor,
	}
}

// Handle processes the ping command and sends the response.
func (h *PingHandler) Handle(
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	result := h.interactor.Execute()

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: result.Message,
		},
	})
}
