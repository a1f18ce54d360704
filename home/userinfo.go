package home

import (
	"fmt"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func init() {
	sys.RegisterCommand(discord.SlashCommandCreate{
		Name:        "userinfo",
		Description: "Show information about a user",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionUser{
				Name:        "user",
				Description: "The user (default: you)",
				Required:    false,
			},
		},
	}, handleUserinfo)
}

func handleUserinfo(event *events.ApplicationCommandInteractionCreate) {
	data := event.SlashCommandInteractionData()
	user := event.User()
	if u, ok := data.OptUser("user"); ok {
		user = u
	}

	created := user.ID.Time().In(sys.Data.Location())
	respondText(event, fmt.Sprintf(
		"👤 **%s**\nID: %s\nCreated: %s",
		user.Username, user.ID.String(), created.Format("2006-01-02 15:04:05")))
}
