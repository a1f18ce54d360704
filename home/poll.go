package home

import (
	"fmt"
	"strings"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

var pollEmojis = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣"}

func init() {
	options := []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "question",
			Description: "The poll question",
			Required:    true,
		},
	}
	for i := 1; i <= 4; i++ {
		options = append(options, discord.ApplicationCommandOptionString{
			Name:        fmt.Sprintf("option%d", i),
			Description: fmt.Sprintf("Choice %d", i),
			Required:    i <= 2,
		})
	}

	sys.RegisterCommand(discord.SlashCommandCreate{
		Name:        "poll",
		Description: "Create a reaction poll",
		Contexts: []discord.InteractionContextType{
			discord.InteractionContextTypeGuild,
		},
		Options: options,
	}, handlePoll)
}

func handlePoll(event *events.ApplicationCommandInteractionCreate) {
	data := event.SlashCommandInteractionData()
	question := data.String("question")

	var choices []string
	for i := 1; i <= 4; i++ {
		if opt, ok := data.OptString(fmt.Sprintf("option%d", i)); ok && opt != "" {
			choices = append(choices, opt)
		}
	}
	if len(choices) < 2 {
		respondEphemeral(event, sys.ErrPollOptions)
		return
	}

	var sb strings.Builder
	for i, opt := range choices {
		sb.WriteString(fmt.Sprintf("%s %s\n", pollEmojis[i], opt))
	}

	client := event.Client()
	channelID := event.Channel().ID()

	respondEphemeral(event, "✅ Poll created")

	msg, err := client.Rest.CreateMessage(channelID, discord.NewMessageCreateBuilder().
		SetContent(fmt.Sprintf("📊 **%s**\n\n%s", question, sb.String())).
		Build())
	if err != nil {
		sys.LogDebug("Failed to create poll message: %v", err)
		return
	}

	for i := range choices {
		if err := client.Rest.AddReaction(msg.ChannelID, msg.ID, pollEmojis[i]); err != nil {
			sys.LogDebug("Failed to add poll reaction: %v", err)
		}
	}
}
