package home

import (
	"fmt"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func init() {
	sys.RegisterCommand(discord.SlashCommandCreate{
		Name:        "avatar",
		Description: "Show a user's avatar",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionUser{
				Name:        "user",
				Description: "The user (default: you)",
				Required:    false,
			},
		},
	}, handleAvatar)
}

func handleAvatar(event *events.ApplicationCommandInteractionCreate) {
	data := event.SlashCommandInteractionData()
	user := event.User()
	if u, ok := data.OptUser("user"); ok {
		user = u
	}

	err := event.CreateMessage(discord.NewMessageCreateBuilder().
		SetIsComponentsV2(true).
		AddComponents(
			discord.NewContainer(
				discord.NewTextDisplay(fmt.Sprintf("**%s**'s avatar", user.Username)),
				discord.NewMediaGallery(discord.MediaGalleryItem{
					Media: discord.UnfurledMediaItem{URL: user.EffectiveAvatarURL()},
				}),
			),
		).
		Build())
	if err != nil {
		sys.LogDebug(sys.MsgRespondError, err)
	}
}
