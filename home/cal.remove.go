package home

import (
	"fmt"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func handleCalRemove(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	index := data.Int("index")

	store := sys.Data
	var removed sys.Event
	err := store.Update(sys.AppContext, *event.GuildID(), func(rec *sys.GuildRecord) error {
		store.SortEvents(rec.Events)
		if index < 1 || index > len(rec.Events) {
			return errBadIndex
		}
		removed = rec.Events[index-1]
		rec.Events = append(rec.Events[:index-1], rec.Events[index:]...)
		return nil
	})
	if err == errBadIndex {
		respondEphemeral(event, sys.ErrCalBadIndex)
		return
	}
	if err != nil {
		sys.LogDatabase(sys.MsgDatabasePersistFail, err)
		respondEphemeral(event, sys.ErrCalSaveFailed)
		return
	}

	respondText(event, fmt.Sprintf("🗑 Event removed: **%s**", removed.Title))
}

func handleCalClear(event *events.ApplicationCommandInteractionCreate) {
	member := event.Member()
	if member == nil || !member.Permissions.Has(discord.PermissionManageGuild) {
		respondEphemeral(event, sys.ErrCalNoPermission)
		return
	}

	store := sys.Data
	err := store.Update(sys.AppContext, *event.GuildID(), func(rec *sys.GuildRecord) error {
		rec.Events = []sys.Event{}
		return nil
	})
	if err != nil {
		sys.LogDatabase(sys.MsgDatabasePersistFail, err)
		respondEphemeral(event, sys.ErrCalSaveFailed)
		return
	}

	respondEphemeral(event, sys.MsgCalCleared)
}
