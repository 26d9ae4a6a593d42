package music

import (
	"fmt"

	"github.com/STWJXSX/Roxy-music/internal/command"
)

type PauseCommand struct{}

func (c *PauseCommand) Name() string        { return "pause" }
func (c *PauseCommand) Description() string { return "Pause playback" }
func (c *PauseCommand) Category() string    { return "🎵 Music" }

func (c *PauseCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true, RequireVoice: true}
}

func (c *PauseCommand) Run(ctx *command.Context) error {
	if err := ctx.Engine.Pause(ctx.GuildID()); err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %v", err))
	}
	return command.Respond(ctx, "⏸️ Paused. Use /resume to continue.")
}

type ResumeCommand struct{}

func (c *ResumeCommand) Name() string        { return "resume" }
func (c *ResumeCommand) Description() string { return "Resume paused playback" }
func (c *ResumeCommand) Category() string    { return "🎵 Music" }

func (c *ResumeCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true, RequireVoice: true}
}

func (c *ResumeCommand) Run(ctx *command.Context) error {
	if err := ctx.Engine.Resume(ctx.GuildID()); err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %v", err))
	}
	return command.Respond(ctx, "▶️ Resumed.")
}

func init() {
	command.Register(&PauseCommand{})
	command.Register(&ResumeCommand{})
}
