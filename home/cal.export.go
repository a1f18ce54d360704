package home

import (
	"fmt"
	"strings"
	"time"

	"github.com/Grinrin1108/Utool/sys"
	ics "github.com/arran4/golang-ical"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func handleCalExport(event *events.ApplicationCommandInteractionCreate) {
	store := sys.Data
	guildID := *event.GuildID()
	rec := store.Get(guildID)

	calEvents := rec.Events
	store.SortEvents(calEvents)
	if len(calEvents) == 0 {
		respondEphemeral(event, sys.MsgCalExportEmpty)
		return
	}

	now := time.Now().In(store.Location())
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	exported := 0
	for i, ev := range calEvents {
		dt, err := store.ParseStamp(ev.Datetime)
		if err != nil {
			continue
		}
		entry := cal.AddEvent(fmt.Sprintf("%s-%d@utool", guildID.String(), i))
		entry.SetCreatedTime(now)
		entry.SetDtStampTime(now)
		entry.SetStartAt(dt)
		entry.SetEndAt(dt.Add(time.Hour))
		entry.SetSummary(ev.Title)
		exported++
	}

	if exported == 0 {
		respondEphemeral(event, sys.MsgCalExportEmpty)
		return
	}

	err := event.CreateMessage(discord.NewMessageCreateBuilder().
		SetContent(fmt.Sprintf("📤 Exported %d event(s).", exported)).
		SetFiles(discord.NewFile("calendar.ics", "Calendar export", strings.NewReader(cal.Serialize()))).
		Build())
	if err != nil {
		sys.LogDebug(sys.MsgRespondError, err)
	}
}
