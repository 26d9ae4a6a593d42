package music

import (
	"fmt"

	"github.com/STWJXSX/Roxy-music/internal/command"
)

// StayCommand toggles 24/7 mode: the bot keeps the voice connection after
// the queue drains and ignores empty-channel timeouts.
type StayCommand struct{}

func (c *StayCommand) Name() string        { return "247" }
func (c *StayCommand) Description() string { return "Toggle 24/7 mode (stay connected forever)" }
func (c *StayCommand) Category() string    { return "🎵 Music" }

func (c *StayCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true, RequireVoice: true, RequirePremium: true}
}

func (c *StayCommand) Run(ctx *command.Context) error {
	q, ok := ctx.Engine.Registry().Get(ctx.GuildID())
	if !ok {
		return command.RespondEphemeral(ctx, "Nothing is playing in this server.")
	}

	stay := !q.Stay()
	if err := ctx.Engine.SetStay(ctx.GuildID(), stay); err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %v", err))
	}
	// Remember the preference so future sessions start in the same mode.
	if err := ctx.Storage.SetDefaultStay(ctx.GuildID(), stay); err != nil {
		return err
	}

	if stay {
		return command.Respond(ctx, "🌙 24/7 mode **enabled**. I'll stay in the channel.")
	}
	return command.Respond(ctx, "🌙 24/7 mode **disabled**.")
}

func init() {
	command.Register(&StayCommand{})
}
