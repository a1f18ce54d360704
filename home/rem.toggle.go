package home

import (
	"fmt"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func handleRemOn(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	minutes := 0
	if m, ok := data.OptInt("minutes"); ok && m > 0 {
		minutes = m
	}
	channelID := event.Channel().ID()
	if ch, ok := data.OptChannel("channel"); ok {
		channelID = ch.ID
	}

	store := sys.Data
	var lead int
	err := store.Update(sys.AppContext, *event.GuildID(), func(rec *sys.GuildRecord) error {
		rec.Reminder.Enabled = true
		rec.Reminder.ChannelID = channelID
		if minutes > 0 {
			rec.Reminder.NotifyMinutes = minutes
		}
		lead = rec.Reminder.NotifyLead()
		return nil
	})
	if err != nil {
		sys.LogDatabase(sys.MsgDatabasePersistFail, err)
		respondEphemeral(event, sys.ErrCalSaveFailed)
		return
	}

	respondText(event, fmt.Sprintf(sys.MsgRemEnabled, lead))
}

func handleRemOff(event *events.ApplicationCommandInteractionCreate) {
	store := sys.Data
	err := store.Update(sys.AppContext, *event.GuildID(), func(rec *sys.GuildRecord) error {
		rec.Reminder.Enabled = false
		return nil
	})
	if err != nil {
		sys.LogDatabase(sys.MsgDatabasePersistFail, err)
		respondEphemeral(event, sys.ErrCalSaveFailed)
		return
	}

	respondText(event, sys.MsgRemDisabled)
}

func handleRemStatus(event *events.ApplicationCommandInteractionCreate) {
	rec := sys.Data.Get(*event.GuildID())

	state := "disabled"
	if rec.Reminder.Enabled {
		state = "enabled"
	}
	channel := "not set"
	if rec.Reminder.ChannelID != 0 {
		channel = fmt.Sprintf("<#%s>", rec.Reminder.ChannelID)
	}

	respondEphemeral(event, fmt.Sprintf(
		"Status: **%s**\nChannel: %s\nLead time: %d minutes\nDaily reminders: %d\nWeekly reminders: %d",
		state, channel, rec.Reminder.NotifyLead(), len(rec.DailyReminders), len(rec.WeeklyReminders)))
}
