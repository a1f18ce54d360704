package home

import (
	"errors"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

// errBadIndex marks a list-position argument outside the current list.
var errBadIndex = errors.New("index out of range")

func respondText(event *events.ApplicationCommandInteractionCreate, content string) {
	respond(event, content, false)
}

func respondEphemeral(event *events.ApplicationCommandInteractionCreate, content string) {
	respond(event, content, true)
}

func respond(event *events.ApplicationCommandInteractionCreate, content string, ephemeral bool) {
	err := event.CreateMessage(discord.NewMessageCreateBuilder().
		SetIsComponentsV2(true).
		AddComponents(
			discord.NewContainer(
				discord.NewTextDisplay(content),
			),
		).
		SetEphemeral(ephemeral).
		Build())
	if err != nil {
		sys.LogDebug(sys.MsgRespondError, err)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
