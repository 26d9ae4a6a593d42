package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/STWJXSX/Roxy-music/internal/command"
	"github.com/STWJXSX/Roxy-music/internal/music/track"
)

type SeekCommand struct{}

func (c *SeekCommand) Name() string        { return "seek" }
func (c *SeekCommand) Description() string { return "Jump to a position in the current track" }
func (c *SeekCommand) Category() string    { return "🎵 Music" }

func (c *SeekCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true, RequireVoice: true}
}

func (c *SeekCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "position",
				Description: "Target position, like 1:30 or 0:45:00",
				Required:    true,
			},
		},
	}
}

func (c *SeekCommand) Run(ctx *command.Context) error {
	raw := ctx.StringOption("position")
	pos, err := track.ParsePosition(raw)
	if err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %q is not a valid position. Try something like `1:30`.", raw))
	}

	if err := ctx.Engine.Seek(ctx.GuildID(), pos); err != nil {
		return command.RespondEphemeral(ctx, fmt.Sprintf("😿 %v", err))
	}
	return command.Respond(ctx, fmt.Sprintf("⏩ Jumped to `%s`.", track.FormatDuration(pos)))
}

func init() {
	command.Register(&SeekCommand{})
}
