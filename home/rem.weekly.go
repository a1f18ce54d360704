package home

import (
	"fmt"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func handleRemWeekly(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	weekday := data.String("weekday")
	timeStr := data.String("time")
	message := data.String("message")

	wd, err := sys.ParseWeekday(weekday)
	if err != nil {
		respondEphemeral(event, sys.ErrRemBadWeekday)
		return
	}
	h, m, err := sys.ParseClock(timeStr)
	if err != nil {
		respondEphemeral(event, sys.ErrRemBadClock)
		return
	}
	clock := fmt.Sprintf("%02d:%02d", h, m)

	err = sys.Data.Update(sys.AppContext, *event.GuildID(), func(rec *sys.GuildRecord) error {
		rec.WeeklyReminders = append(rec.WeeklyReminders, sys.WeeklyReminder{
			Weekday:   wd.String(),
			Time:      clock,
			Message:   message,
			ChannelID: event.Channel().ID(),
		})
		return nil
	})
	if err != nil {
		sys.LogDatabase(sys.MsgDatabasePersistFail, err)
		respondEphemeral(event, sys.ErrCalSaveFailed)
		return
	}

	respondText(event, fmt.Sprintf("✅ Weekly reminder on %s at %s: %s", wd.String(), clock, message))
}
