package home

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/Grinrin1108/Utool/sys"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

func init() {
	sys.RegisterCommand(discord.SlashCommandCreate{
		Name:        "roll",
		Description: "Roll dice (e.g. 2d6)",
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionString{
				Name:        "dice",
				Description: "NdM notation",
				Required:    true,
			},
		},
	}, handleRoll)
}

// parseDice reads NdM notation ("2d6") into count and sides.
func parseDice(v string) (count, sides int, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(v)), "d")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid dice: %q", v)
	}
	count, errC := strconv.Atoi(parts[0])
	sides, errS := strconv.Atoi(parts[1])
	if errC != nil || errS != nil || count < 1 || sides < 1 {
		return 0, 0, fmt.Errorf("invalid dice: %q", v)
	}
	return count, sides, nil
}

func handleRoll(event *events.ApplicationCommandInteractionCreate) {
	data := event.SlashCommandInteractionData()
	dice := data.String("dice")

	count, sides, err := parseDice(dice)
	if err != nil {
		respondEphemeral(event, sys.ErrRollBadFormat)
		return
	}
	if count > 100 || sides > 1000 {
		respondEphemeral(event, sys.ErrRollTooMany)
		return
	}

	results := make([]string, count)
	total := 0
	for i := range results {
		n := rand.Intn(sides) + 1
		total += n
		results[i] = strconv.Itoa(n)
	}

	respondText(event, fmt.Sprintf("🎲 <@%s> rolled %s: [%s] → total **%d**",
		event.User().ID, dice, strings.Join(results, ", "), total))
}
