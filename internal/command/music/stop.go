package music

import (
	"fmt"

	"github.com/STWJXSX/Roxy-music/internal/command"
)

type StopCommand struct{}

func (c *StopCommand) Name() string        { return "stop" }
func (c *StopCommand) Description() string { return "Stop playback, clear the queue and leave" }
func (c *StopCommand) Category() string    { return "🎵 Music" }

func (c *StopCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true, RequireVoice: true}
}

func (c *StopCommand) Run(ctx *command.Context) error {
	if err := ctx.Engine.Stop(ctx.GuildID()); err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %v", err))
	}
	return command.Respond(ctx, "⏹️ Stopped and left the voice channel.")
}

func init() {
	command.Register(&StopCommand{})
}
