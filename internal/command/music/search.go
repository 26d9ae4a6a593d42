package music

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/STWJXSX/Roxy-music/internal/command"
)

const searchLimit = 5

type SearchCommand struct{}

func (c *SearchCommand) Name() string        { return "search" }
func (c *SearchCommand) Description() string { return "Search YouTube and list the top matches" }
func (c *SearchCommand) Category() string    { return "🎵 Music" }

func (c *SearchCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true}
}

func (c *SearchCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "Search terms",
				Required:    true,
			},
		},
	}
}

func (c *SearchCommand) Run(ctx *command.Context) error {
	query := ctx.StringOption("query")
	if query == "" {
		return command.RespondEphemeral(ctx, "Tell me what to search for.")
	}

	if err := command.RespondDeferred(ctx); err != nil {
		return err
	}

	tracks := ctx.Engine.Search(query, ctx.Username(), searchLimit)
	if len(tracks) == 0 {
		return command.Followup(ctx, fmt.Sprintf("😿 Nothing found for **%s**.", query))
	}

	var b strings.Builder
	for i, t := range tracks {
		fmt.Fprintf(&b, "`%d.` %s\n", i+1, trackLine(t))
	}
	return command.FollowupEmbed(ctx, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🔎 Results for %q", query),
		Description: b.String(),
		Color:       command.EmbedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Use /play with a link to queue one"},
	})
}

func init() {
	command.Register(&SearchCommand{})
}
