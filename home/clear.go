package home

import (
	"fmt"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/omit"
	"github.com/disgoorg/snowflake/v2"
)

func init() {
	manageMessages := discord.PermissionManageMessages

	sys.RegisterCommand(discord.SlashCommandCreate{
		Name:                     "clear",
		Description:              "Bulk delete recent messages in this channel",
		DefaultMemberPermissions: omit.New(&manageMessages),
		Contexts: []discord.InteractionContextType{
			discord.InteractionContextTypeGuild,
		},
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionInt{
				Name:        "amount",
				Description: "How many messages to delete (default 5, max 100)",
				Required:    false,
			},
		},
	}, handleClear)
}

func handleClear(event *events.ApplicationCommandInteractionCreate) {
	data := event.SlashCommandInteractionData()
	amount := 5
	if a, ok := data.OptInt("amount"); ok && a > 0 {
		amount = a
	}
	if amount > 100 {
		amount = 100
	}

	channelID := event.Channel().ID()
	client := event.Client()

	respondEphemeral(event, fmt.Sprintf("Deleting up to %d messages...", amount))

	messages, err := client.Rest.GetMessages(channelID, 0, 0, 0, amount)
	if err != nil {
		sys.LogDebug("Failed to fetch messages for /clear: %v", err)
		return
	}

	ids := make([]snowflake.ID, 0, len(messages))
	for _, msg := range messages {
		ids = append(ids, msg.ID)
	}

	if err := deleteFetched(client.Rest, channelID, ids); err != nil {
		sys.LogDebug("Failed to delete messages: %v", err)
	}
}

type messageDeleter interface {
	DeleteMessage(channelID snowflake.ID, messageID snowflake.ID, opts ...rest.RequestOpt) error
	BulkDeleteMessages(channelID snowflake.ID, messageIDs []snowflake.ID, opts ...rest.RequestOpt) error
}

// deleteFetched removes the given messages. The bulk endpoint rejects
// batches outside 2 to 100 IDs, so a single message goes through the plain
// delete endpoint.
func deleteFetched(deleter messageDeleter, channelID snowflake.ID, ids []snowflake.ID) error {
	switch len(ids) {
	case 0:
		return nil
	case 1:
		return deleter.DeleteMessage(channelID, ids[0])
	default:
		return deleter.BulkDeleteMessages(channelID, ids)
	}
}
