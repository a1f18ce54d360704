package proc

import (
	"context"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/time/rate"
)

// Notification is one pending "deliver this text to this channel" decision.
type Notification struct {
	ChannelID snowflake.ID
	Content   string
}

// Sink delivers notification text to a channel, best effort.
type Sink interface {
	Send(ctx context.Context, channelID snowflake.ID, content string) error
	Resolve(ctx context.Context, channelID snowflake.ID) bool
}

type restSink struct {
	client  *bot.Client
	limiter *rate.Limiter
}

// NewRestSink wraps the Discord REST API in a rate-limited Sink so a large
// fan-out cycle cannot burst past Discord's limits.
func NewRestSink(client *bot.Client) Sink {
	return &restSink{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(4), 10),
	}
}

func (s *restSink) Send(ctx context.Context, channelID snowflake.ID, content string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	builder := discord.NewMessageCreateBuilder().
		SetIsComponentsV2(true).
		AddComponents(
			discord.NewContainer(
				discord.NewTextDisplay(content),
			),
		)

	_, err := s.client.Rest.CreateMessage(channelID, builder.Build(), rest.WithCtx(ctx))
	return err
}

// Resolve reports whether the channel still exists. Cache first, REST as a
// fallback for channels outside the cached guilds.
func (s *restSink) Resolve(ctx context.Context, channelID snowflake.ID) bool {
	if channelID == 0 {
		return false
	}
	if _, ok := s.client.Caches.Channel(channelID); ok {
		return true
	}
	_, err := s.client.Rest.GetChannel(channelID, rest.WithCtx(ctx))
	return err == nil
}
