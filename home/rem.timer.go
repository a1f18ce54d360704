package home

import (
	"fmt"
	"time"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
)

// One-shot timers live only in the invoking process; a restart drops them.
func handleRemTimer(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	when := data.String("when")
	message := data.String("message")

	target, err := parseWhenInput(when)
	if err != nil {
		respondEphemeral(event, sys.ErrRemBadDuration)
		return
	}

	wait := time.Until(target)
	if wait <= 0 {
		respondEphemeral(event, sys.ErrRemPastTime)
		return
	}

	userID := event.User().ID
	channelID := event.Channel().ID()
	client := event.Client()

	respondEphemeral(event, fmt.Sprintf("⏲ Timer set for %s: %s", target.Format("15:04"), truncate(message, 80)))

	go func() {
		timer := time.NewTimer(wait)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-sys.AppContext.Done():
			return
		}

		content := fmt.Sprintf("<@%s> ⏰ Timer: %s", userID, message)
		_, err := client.Rest.CreateMessage(channelID, discord.NewMessageCreateBuilder().
			SetContent(content).
			SetAllowedMentions(&discord.AllowedMentions{Users: []snowflake.ID{userID}}).
			Build())
		if err != nil {
			sys.LogTimer("Failed to deliver timer for %s: %v", userID, err)
			return
		}
		sys.LogTimer("Delivered timer for %s", userID)
	}()
}
