package home

import (
	"fmt"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func handleTodoRemove(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	index := data.Int("index")

	store := sys.Data
	var removed sys.Todo
	err := store.Update(sys.AppContext, *event.GuildID(), func(rec *sys.GuildRecord) error {
		store.SortTodos(rec.Todos)
		if index < 1 || index > len(rec.Todos) {
			return errBadIndex
		}
		removed = rec.Todos[index-1]
		rec.Todos = append(rec.Todos[:index-1], rec.Todos[index:]...)
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

	respondText(event, fmt.Sprintf("🗑 Todo removed: %s", removed.Content))
}
