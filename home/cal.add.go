package home

import (
	"fmt"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func handleCalAdd(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	title := data.String("title")
	date := data.String("date")
	clock, _ := data.OptString("time")

	dt, err := parseDateTimeInput(date, clock, "00:00")
	if err != nil {
		respondEphemeral(event, sys.ErrCalBadDate)
		return
	}

	store := sys.Data
	err = store.Update(sys.AppContext, *event.GuildID(), func(rec *sys.GuildRecord) error {
		rec.Events = append(rec.Events, sys.Event{
			Title:    title,
			Datetime: store.FormatStamp(dt),
		})
		store.SortEvents(rec.Events)
		return nil
	})
	if err != nil {
		sys.LogDatabase(sys.MsgDatabasePersistFail, err)
		respondEphemeral(event, sys.ErrCalSaveFailed)
		return
	}

	respondText(event, fmt.Sprintf("📅 Event added: **%s**\n🗓 %s", title, dt.Format("2006-01-02 15:04")))
}
