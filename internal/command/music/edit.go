// Queue editing commands: shuffle, jump, remove, clear.
package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/STWJXSX/Roxy-music/internal/command"
)

type ShuffleCommand struct{}

func (c *ShuffleCommand) Name() string        { return "shuffle" }
func (c *ShuffleCommand) Description() string { return "Shuffle the pending queue" }
func (c *ShuffleCommand) Category() string    { return "🎵 Music" }

func (c *ShuffleCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true, RequireVoice: true}
}

func (c *ShuffleCommand) Run(ctx *command.Context) error {
	n, err := ctx.Engine.Shuffle(ctx.GuildID())
	if err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %v", err))
	}
	return command.Respond(ctx, fmt.Sprintf("🔀 Shuffled **%d** tracks.", n))
}

type JumpCommand struct{}

func (c *JumpCommand) Name() string        { return "jump" }
func (c *JumpCommand) Description() string { return "Jump to a queue position, dropping everything before it" }
func (c *JumpCommand) Category() string    { return "🎵 Music" }

func (c *JumpCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true, RequireVoice: true}
}

func (c *JumpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	lo := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "position",
				Description: "Queue position to jump to",
				Required:    true,
				MinValue:    &lo,
			},
		},
	}
}

func (c *JumpCommand) Run(ctx *command.Context) error {
	pos, ok := ctx.IntOption("position")
	if !ok || pos < 1 {
		return command.RespondEphemeral(ctx, "Tell me a queue position to jump to.")
	}

	target, err := ctx.Engine.Jump(ctx.GuildID(), int(pos)-1)
	if err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %v", err))
	}
	return command.Respond(ctx, fmt.Sprintf("⤵️ Jumping to **%s**.", target.Title))
}

type RemoveCommand struct{}

func (c *RemoveCommand) Name() string        { return "remove" }
func (c *RemoveCommand) Description() string { return "Remove one track from the queue" }
func (c *RemoveCommand) Category() string    { return "🎵 Music" }

func (c *RemoveCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true, RequireVoice: true}
}

func (c *RemoveCommand) SlashDefinition() *discordgo.ApplicationCommand {
	lo := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "position",
				Description: "Queue position to remove",
				Required:    true,
				MinValue:    &lo,
			},
		},
	}
}

func (c *RemoveCommand) Run(ctx *command.Context) error {
	pos, ok := ctx.IntOption("position")
	if !ok || pos < 1 {
		return command.RespondEphemeral(ctx, "Tell me a queue position to remove.")
	}

	removed, err := ctx.Engine.Remove(ctx.GuildID(), int(pos)-1)
	if err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %v", err))
	}
	return command.Respond(ctx, fmt.Sprintf("🗑️ Removed **%s**.", removed.Title))
}

type ClearCommand struct{}

func (c *ClearCommand) Name() string        { return "clear" }
func (c *ClearCommand) Description() string { return "Clear the pending queue" }
func (c *ClearCommand) Category() string    { return "🎵 Music" }

func (c *ClearCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true, RequireVoice: true}
}

func (c *ClearCommand) Run(ctx *command.Context) error {
	n, err := ctx.Engine.Clear(ctx.GuildID())
	if err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %v", err))
	}
	return command.Respond(ctx, fmt.Sprintf("🧹 Cleared **%d** tracks. The current one keeps playing.", n))
}

func init() {
	command.Register(&ShuffleCommand{})
	command.Register(&JumpCommand{})
	command.Register(&RemoveCommand{})
	command.Register(&ClearCommand{})
}
