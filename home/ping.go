package home

import (
	"fmt"
	"time"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
)

func init() {
	sys.RegisterCommand(discord.SlashCommandCreate{
		Name:        "ping",
		Description: "Check bot latency",
	}, handlePing)
}

func handlePing(event *events.ApplicationCommandInteractionCreate) {
	interTime := snowflake.ID(event.ID()).Time()
	latency := time.Since(interTime).Milliseconds()
	gateway := event.Client().Gateway.Latency().Milliseconds()
	uptime := time.Since(sys.StartupTime).Round(time.Second)

	respondEphemeral(event, fmt.Sprintf("🏓 Pong! Roundtrip: %dms, Gateway: %dms, Uptime: %s", latency, gateway, uptime))
}
