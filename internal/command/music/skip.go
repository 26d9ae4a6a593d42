package music

import (
	"fmt"

	"github.com/STWJXSX/Roxy-music/internal/command"
)

type SkipCommand struct{}

func (c *SkipCommand) Name() string        { return "skip" }
func (c *SkipCommand) Description() string { return "Skip the current track" }
func (c *SkipCommand) Category() string    { return "🎵 Music" }

func (c *SkipCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true, RequireVoice: true}
}

func (c *SkipCommand) Run(ctx *command.Context) error {
	skipped, err := ctx.Engine.Skip(ctx.GuildID())
	if err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %v", err))
	}
	return command.Respond(ctx, fmt.Sprintf("⏭️ Skipped **%s**.", skipped.Title))
}

func init() {
	command.Register(&SkipCommand{})
}
