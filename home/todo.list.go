package home

import (
	"fmt"
	"strings"
	"time"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func handleTodoList(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	store := sys.Data
	rec := store.Get(*event.GuildID())

	todos := rec.Todos
	store.SortTodos(todos)

	max := 20
	if m, ok := data.OptInt("max"); ok && m > 0 {
		max = m
	}
	if len(todos) > max {
		todos = todos[:max]
	}

	if len(todos) == 0 {
		respondEphemeral(event, sys.MsgTodoEmpty)
		return
	}

	now := time.Now().In(store.Location())
	var sb strings.Builder
	sb.WriteString("📝 **Todo list**\n\n")

	for i, td := range todos {
		status := "❌"
		if td.Done {
			status = "✅"
		}
		sb.WriteString(fmt.Sprintf("**%d.** %s %s\n", i+1, status, td.Content))

		if td.Due != nil && *td.Due != "" {
			if dueAt, err := store.ParseStamp(*td.Due); err == nil {
				sb.WriteString(fmt.Sprintf("⏳ Due: %s", dueAt.Format("2006-01-02 15:04")))
				if !td.Done && dueAt.Before(now) {
					sb.WriteString(" ⚠️ overdue")
				}
				sb.WriteString("\n")
			} else {
				sb.WriteString("⏳ Due: (invalid)\n")
			}
		}
	}

	respondText(event, sb.String())
}
