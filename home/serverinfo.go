package home

import (
	"fmt"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func init() {
	sys.RegisterCommand(discord.SlashCommandCreate{
		Name:        "serverinfo",
		Description: "Show information about this server",
		Contexts: []discord.InteractionContextType{
			discord.InteractionContextTypeGuild,
		},
	}, handleServerinfo)
}

func handleServerinfo(event *events.ApplicationCommandInteractionCreate) {
	guildID := event.GuildID()
	if guildID == nil {
		return
	}

	guild, ok := event.Client().Caches.Guild(*guildID)
	if !ok {
		respondEphemeral(event, "Server information is not available right now.")
		return
	}

	respondText(event, fmt.Sprintf(
		"🏠 **%s**\nID: %s\nMembers: %d\nCreated: %s",
		guild.Name, guild.ID.String(), guild.MemberCount,
		guild.ID.Time().In(sys.Data.Location()).Format("2006-01-02")))
}
