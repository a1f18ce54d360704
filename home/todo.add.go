package home

import (
	"fmt"
	"time"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func handleTodoAdd(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	content := data.String("content")
	dueDate, _ := data.OptString("due_date")
	dueTime, _ := data.OptString("due_time")

	store := sys.Data

	var due *string
	var dueStamp time.Time
	if dueDate != "" {
		dt, err := parseDateTimeInput(dueDate, dueTime, "23:59")
		if err != nil {
			respondEphemeral(event, sys.ErrTodoBadDue)
			return
		}
		dueStamp = dt
		s := store.FormatStamp(dt)
		due = &s
	}

	err := store.Update(sys.AppContext, *event.GuildID(), func(rec *sys.GuildRecord) error {
		rec.Todos = append(rec.Todos, sys.Todo{
			Content: content,
			Done:    false,
			AddedAt: store.FormatStamp(time.Now()),
			Due:     due,
		})
		store.SortTodos(rec.Todos)
		return nil
	})
	if err != nil {
		sys.LogDatabase(sys.MsgDatabasePersistFail, err)
		respondEphemeral(event, sys.ErrCalSaveFailed)
		return
	}

	msg := fmt.Sprintf("📝 Todo added: %s", content)
	if due != nil {
		msg += fmt.Sprintf("\n⏳ Due: %s", dueStamp.Format("2006-01-02 15:04"))
	}
	respondText(event, msg)
}
