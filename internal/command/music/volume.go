package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/STWJXSX/Roxy-music/internal/command"
)

type VolumeCommand struct{}

func (c *VolumeCommand) Name() string        { return "volume" }
func (c *VolumeCommand) Description() string { return "Set the playback volume" }
func (c *VolumeCommand) Category() string    { return "🎵 Music" }

func (c *VolumeCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true, RequireVoice: true}
}

func (c *VolumeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	lo, hi := float64(0), float64(100)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "percent",
				Description: "Volume from 0 to 100",
				Required:    true,
				MinValue:    &lo,
				MaxValue:    hi,
			},
		},
	}
}

func (c *VolumeCommand) Run(ctx *command.Context) error {
	percent, ok := ctx.IntOption("percent")
	if !ok {
		return command.RespondEphemeral(ctx, "Tell me a volume from 0 to 100.")
	}

	if err := ctx.Engine.SetVolume(ctx.GuildID(), int(percent)); err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %v", err))
	}
	return command.Respond(ctx, fmt.Sprintf("🔊 Volume set to **%d%%**.", percent))
}

func init() {
	command.Register(&VolumeCommand{})
}
