package home

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func handleRemList(event *events.ApplicationCommandInteractionCreate) {
	rec := sys.Data.Get(*event.GuildID())

	if len(rec.DailyReminders) == 0 && len(rec.WeeklyReminders) == 0 {
		respondEphemeral(event, sys.MsgRemNone)
		return
	}

	var sb strings.Builder
	sb.WriteString("⏰ **Recurring reminders**\n\n")
	for i, dr := range rec.DailyReminders {
		sb.WriteString(fmt.Sprintf("**[D%d]** %s <#%s>\n%s\n", i+1, dr.Time, dr.ChannelID, truncate(dr.Message, 80)))
	}
	for i, wr := range rec.WeeklyReminders {
		sb.WriteString(fmt.Sprintf("**[W%d]** %s %s <#%s>\n%s\n", i+1, wr.Weekday, wr.Time, wr.ChannelID, truncate(wr.Message, 80)))
	}

	respondText(event, sb.String())
}

func handleRemRemove(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	id := strings.ToUpper(strings.TrimSpace(data.String("id")))
	if len(id) < 2 {
		respondEphemeral(event, sys.ErrRemBadID)
		return
	}

	kind := id[0]
	idx, err := strconv.Atoi(id[1:])
	if err != nil || (kind != 'D' && kind != 'W') {
		respondEphemeral(event, sys.ErrRemBadID)
		return
	}

	var removed string
	updateErr := sys.Data.Update(sys.AppContext, *event.GuildID(), func(rec *sys.GuildRecord) error {
		switch kind {
		case 'D':
			if idx < 1 || idx > len(rec.DailyReminders) {
				return errBadIndex
			}
			removed = rec.DailyReminders[idx-1].Message
			rec.DailyReminders = append(rec.DailyReminders[:idx-1], rec.DailyReminders[idx:]...)
		case 'W':
			if idx < 1 || idx > len(rec.WeeklyReminders) {
				return errBadIndex
			}
			removed = rec.WeeklyReminders[idx-1].Message
			rec.WeeklyReminders = append(rec.WeeklyReminders[:idx-1], rec.WeeklyReminders[idx:]...)
		}
		return nil
	})
	if updateErr == errBadIndex {
		respondEphemeral(event, sys.ErrRemBadID)
		return
	}
	if updateErr != nil {
		sys.LogDatabase(sys.MsgDatabasePersistFail, updateErr)
		respondEphemeral(event, sys.ErrCalSaveFailed)
		return
	}

	respondText(event, fmt.Sprintf("🗑 Reminder removed: %s", truncate(removed, 80)))
}
