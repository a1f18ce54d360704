package home

import (
	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func init() {
	sys.RegisterCommand(discord.SlashCommandCreate{
		Name:        "cal",
		Description: "Manage server events",
		Contexts: []discord.InteractionContextType{
			discord.InteractionContextTypeGuild,
		},
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionSubCommand{
				Name:        "add",
				Description: "Add an event",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionString{
						Name:        "title",
						Description: "Event title",
						Required:    true,
					},
					discord.ApplicationCommandOptionString{
						Name:        "date",
						Description: "Date (YYYY-MM-DD or e.g. 'next friday')",
						Required:    true,
					},
					discord.ApplicationCommandOptionString{
						Name:        "time",
						Description: "Time (HH:MM, default 00:00)",
						Required:    false,
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "list",
				Description: "Show upcoming events",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionInt{
						Name:        "max",
						Description: "Maximum entries to show (default 10)",
						Required:    false,
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "today",
				Description: "Show today's events",
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "remove",
				Description: "Remove an event by its list number",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionInt{
						Name:        "index",
						Description: "Number shown by /cal list",
						Required:    true,
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "clear",
				Description: "Delete all events (Manage Server)",
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "export",
				Description: "Export all events as an iCalendar file",
			},
		},
	}, func(event *events.ApplicationCommandInteractionCreate) {
		data := event.SlashCommandInteractionData()
		subCmd := data.SubCommandName
		if subCmd == nil || event.GuildID() == nil {
			return
		}

		switch *subCmd {
		case "add":
			handleCalAdd(event, data)
		case "list":
			handleCalList(event, data, false)
		case "today":
			handleCalList(event, data, true)
		case "remove":
			handleCalRemove(event, data)
		case "clear":
			handleCalClear(event)
		case "export":
			handleCalExport(event)
		}
	})
}
