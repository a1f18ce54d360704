package home

import (
	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func init() {
	sys.RegisterCommand(discord.SlashCommandCreate{
		Name:        "todo",
		Description: "Manage the server todo list",
		Contexts: []discord.InteractionContextType{
			discord.InteractionContextTypeGuild,
		},
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionSubCommand{
				Name:        "add",
				Description: "Add a todo (with optional due date)",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionString{
						Name:        "content",
						Description: "What needs doing",
						Required:    true,
					},
					discord.ApplicationCommandOptionString{
						Name:        "due_date",
						Description: "Due date (YYYY-MM-DD)",
						Required:    false,
					},
					discord.ApplicationCommandOptionString{
						Name:        "due_time",
						Description: "Due time (HH:MM, default 23:59)",
						Required:    false,
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "list",
				Description: "Show the todo list",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionInt{
						Name:        "max",
						Description: "Maximum entries to show (default 20)",
						Required:    false,
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "done",
				Description: "Mark a todo as done by its list number",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionInt{
						Name:        "index",
						Description: "Number shown by /todo list",
						Required:    true,
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "remove",
				Description: "Remove a todo by its list number",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionInt{
						Name:        "index",
						Description: "Number shown by /todo list",
						Required:    true,
					},
				},
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
			handleTodoAdd(event, data)
		case "list":
			handleTodoList(event, data)
		case "done":
			handleTodoDone(event, data)
		case "remove":
			handleTodoRemove(event, data)
		}
	})
}
