package home

import (
	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

var weekdayChoices = []discord.ApplicationCommandOptionChoiceString{
	{Name: "Monday", Value: "Monday"},
	{Name: "Tuesday", Value: "Tuesday"},
	{Name: "Wednesday", Value: "Wednesday"},
	{Name: "Thursday", Value: "Thursday"},
	{Name: "Friday", Value: "Friday"},
	{Name: "Saturday", Value: "Saturday"},
	{Name: "Sunday", Value: "Sunday"},
}

func init() {
	sys.RegisterCommand(discord.SlashCommandCreate{
		Name:        "rem",
		Description: "Manage reminders and announcements",
		Contexts: []discord.InteractionContextType{
			discord.InteractionContextTypeGuild,
		},
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionSubCommand{
				Name:        "on",
				Description: "Enable event announcements in this channel",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionInt{
						Name:        "minutes",
						Description: "Lead time in minutes (default 5)",
						Required:    false,
					},
					discord.ApplicationCommandOptionChannel{
						Name:        "channel",
						Description: "Announcement channel (default: this one)",
						Required:    false,
						ChannelTypes: []discord.ChannelType{
							discord.ChannelTypeGuildText,
						},
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "off",
				Description: "Disable event announcements",
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "status",
				Description: "Show the announcement settings",
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "daily",
				Description: "Add a daily reminder at a fixed time",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionString{
						Name:        "time",
						Description: "Time of day (HH:MM)",
						Required:    true,
					},
					discord.ApplicationCommandOptionString{
						Name:        "message",
						Description: "Reminder message",
						Required:    true,
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "weekly",
				Description: "Add a weekly reminder",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionString{
						Name:        "weekday",
						Description: "Day of the week",
						Required:    true,
						Choices:     weekdayChoices,
					},
					discord.ApplicationCommandOptionString{
						Name:        "time",
						Description: "Time of day (HH:MM)",
						Required:    true,
					},
					discord.ApplicationCommandOptionString{
						Name:        "message",
						Description: "Reminder message",
						Required:    true,
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "list",
				Description: "List recurring reminders",
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "remove",
				Description: "Remove a recurring reminder by ID (D# or W#)",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionString{
						Name:        "id",
						Description: "ID shown by /rem list",
						Required:    true,
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "timer",
				Description: "One-shot timer (e.g. 10m, 1h30m, 'in 2 hours')",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionString{
						Name:        "when",
						Description: "When to fire",
						Required:    true,
					},
					discord.ApplicationCommandOptionString{
						Name:        "message",
						Description: "Timer message",
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
		case "on":
			handleRemOn(event, data)
		case "off":
			handleRemOff(event)
		case "status":
			handleRemStatus(event)
		case "daily":
			handleRemDaily(event, data)
		case "weekly":
			handleRemWeekly(event, data)
		case "list":
			handleRemList(event)
		case "remove":
			handleRemRemove(event, data)
		case "timer":
			handleRemTimer(event, data)
		}
	})
}
