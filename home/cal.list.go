package home

import (
	"fmt"
	"strings"
	"time"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func handleCalList(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData, todayOnly bool) {
	store := sys.Data
	rec := store.Get(*event.GuildID())
	store.SortEvents(rec.Events)

	max := 10
	if m, ok := data.OptInt("max"); ok && m > 0 {
		max = m
	}

	now := time.Now().In(store.Location())
	lines := calListLines(store, rec.Events, todayOnly, max, now)

	if len(lines) == 0 {
		respondEphemeral(event, sys.MsgCalEmpty)
		return
	}

	header := "📅 **Upcoming events**\n\n"
	if todayOnly {
		header = "📅 **Today's events**\n\n"
	}
	respondText(event, header+strings.Join(lines, "\n"))
}

// calListLines renders sorted events as numbered entries. Numbers are the
// position in the full sorted list even in the today view, so they stay
// valid as /cal remove indices.
func calListLines(store *sys.Store, events []sys.Event, todayOnly bool, max int, now time.Time) []string {
	var lines []string
	for i, ev := range events {
		dt, err := store.ParseStamp(ev.Datetime)
		if err != nil {
			if todayOnly {
				continue
			}
			lines = append(lines, fmt.Sprintf("**%d.** %s\n🗓 (invalid date)", i+1, ev.Title))
		} else {
			if todayOnly && (dt.Year() != now.Year() || dt.YearDay() != now.YearDay()) {
				continue
			}
			lines = append(lines, fmt.Sprintf("**%d.** %s\n🗓 %s", i+1, ev.Title, dt.Format("2006-01-02 15:04")))
		}
		if len(lines) >= max {
			break
		}
	}
	return lines
}
