package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/STWJXSX/Roxy-music/internal/command"
	"github.com/STWJXSX/Roxy-music/internal/music/queue"
)

type LoopCommand struct{}

func (c *LoopCommand) Name() string        { return "loop" }
func (c *LoopCommand) Description() string { return "Loop the current track or the whole queue" }
func (c *LoopCommand) Category() string    { return "🎵 Music" }

func (c *LoopCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true, RequireVoice: true}
}

func (c *LoopCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "mode",
				Description: "Loop mode",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "off", Value: "off"},
					{Name: "track", Value: "track"},
					{Name: "queue", Value: "queue"},
				},
			},
		},
	}
}

func (c *LoopCommand) Run(ctx *command.Context) error {
	mode, err := queue.ParseLoopMode(ctx.StringOption("mode"))
	if err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %v", err))
	}

	if err := ctx.Engine.SetLoop(ctx.GuildID(), mode); err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %v", err))
	}
	if mode == queue.LoopOff {
		return command.Respond(ctx, "➡️ Loop disabled.")
	}
	return command.Respond(ctx, fmt.Sprintf("🔁 Looping the **%s**.", mode))
}

func init() {
	command.Register(&LoopCommand{})
}
