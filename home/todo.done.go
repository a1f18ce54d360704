package home

import (
	"fmt"
	"time"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func handleTodoDone(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	index := data.Int("index")

	store := sys.Data
	var done sys.Todo
	err := store.Update(sys.AppContext, *event.GuildID(), func(rec *sys.GuildRecord) error {
		store.SortTodos(rec.Todos)
		if index < 1 || index > len(rec.Todos) {
			return errBadIndex
		}
		doneAt := store.FormatStamp(time.Now())
		rec.Todos[index-1].Done = true
		rec.Todos[index-1].DoneAt = &doneAt
		done = rec.Todos[index-1]
		return nil
	})
	if err == errBadIndex {
		respondEphemeral(event, sys.ErrTodoBadIndex)
		return
	}
	if err != nil {
		sys.LogDatabase(sys.MsgDatabasePersistFail, err)
		respondEphemeral(event, sys.ErrCalSaveFailed)
		return
	}

	respondText(event, fmt.Sprintf("✅ Done: %s", done.Content))
}
