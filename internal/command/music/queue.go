package music

import (
	"fmt"

	"github.com/STWJXSX/Roxy-music/internal/command"
)

// queuePageSize caps how many pending tracks one embed lists.
const queuePageSize = 15

type QueueCommand struct{}

func (c *QueueCommand) Name() string        { return "queue" }
func (c *QueueCommand) Description() string { return "Show the current queue" }
func (c *QueueCommand) Category() string    { return "🎵 Music" }

func (c *QueueCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true}
}

func (c *QueueCommand) Run(ctx *command.Context) error {
	q, ok := ctx.Engine.Registry().Get(ctx.GuildID())
	if !ok {
		return command.RespondEphemeral(ctx, "Nothing is playing in this server.")
	}

	pending := q.Pending()
	page := ""
	if len(pending) > queuePageSize {
		page = fmt.Sprintf("showing %d of %d", queuePageSize, len(pending))
		pending = pending[:queuePageSize]
	}

	return command.RespondEmbed(ctx, queueEmbed(q.Current(), pending, q.Loop().String(), page))
}

type NowPlayingCommand struct{}

func (c *NowPlayingCommand) Name() string        { return "nowplaying" }
func (c *NowPlayingCommand) Description() string { return "Show the playing track" }
func (c *NowPlayingCommand) Category() string    { return "🎵 Music" }

func (c *NowPlayingCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true}
}

func (c *NowPlayingCommand) Run(ctx *command.Context) error {
	q, ok := ctx.Engine.Registry().Get(ctx.GuildID())
	if !ok || q.Current() == nil {
		return command.RespondEphemeral(ctx, "Nothing is playing right now.")
	}

	volume := int(q.Volume()*100 + 0.5)
	return command.RespondEmbed(ctx, nowPlayingEmbed(q.Current(), volume, q.Paused()))
}

func init() {
	command.Register(&QueueCommand{})
	command.Register(&NowPlayingCommand{})
}
