package home

import (
	"fmt"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func handleRemDaily(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	timeStr := data.String("time")
	message := data.String("message")

	h, m, err := sys.ParseClock(timeStr)
	if err != nil {
		respondEphemeral(event, sys.ErrRemBadClock)
		return
	}
	clock := fmt.Sprintf("%02d:%02d", h, m)

	err = sys.Data.Update(sys.AppContext, *event.GuildID(), func(rec *sys.GuildRecord) error {
		rec.DailyReminders = append(rec.DailyReminders, sys.DailyReminder{
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

	respondText(event, fmt.Sprintf("✅ Daily reminder at %s: %s", clock, message))
}
