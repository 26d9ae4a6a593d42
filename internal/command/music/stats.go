package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/STWJXSX/Roxy-music/internal/command"
	"github.com/STWJXSX/Roxy-music/internal/version"
)

type StatsCommand struct{}

func (c *StatsCommand) Name() string        { return "stats" }
func (c *StatsCommand) Description() string { return "Show bot statistics" }
func (c *StatsCommand) Category() string    { return "🎵 Music" }

func (c *StatsCommand) Capabilities() command.Capabilities {
	return command.Capabilities{}
}

func (c *StatsCommand) Run(ctx *command.Context) error {
	played := ctx.Storage.SongsPlayed()
	active := ctx.Engine.Registry().Count()

	return command.RespondEmbed(ctx, &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 %s v%s", version.AppName, version.AppVer),
		Color: command.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Songs played", Value: fmt.Sprintf("%d", played), Inline: true},
			{Name: "Active servers", Value: fmt.Sprintf("%d", active), Inline: true},
		},
	})
}

func init() {
	command.Register(&StatsCommand{})
}
