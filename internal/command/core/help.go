package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/STWJXSX/Roxy-music/internal/command"
	"github.com/STWJXSX/Roxy-music/internal/version"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List all commands" }
func (c *HelpCommand) Category() string    { return "ℹ️ Core" }

func (c *HelpCommand) Capabilities() command.Capabilities {
	return command.Capabilities{}
}

func (c *HelpCommand) Run(ctx *command.Context) error {
	byCategory := map[string][]command.Command{}
	for _, cmd := range command.All() {
		byCategory[cmd.Category()] = append(byCategory[cmd.Category()], cmd)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var b strings.Builder
	for _, cat := range categories {
		fmt.Fprintf(&b, "**%s**\n", cat)
		for _, cmd := range byCategory[cat] {
			fmt.Fprintf(&b, "`/%s` - %s\n", cmd.Name(), cmd.Description())
		}
		b.WriteString("\n")
	}

	return command.RespondEmbed(ctx, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s v%s", version.AppName, version.AppVer),
		Description: b.String(),
		Color:       command.EmbedColor,
	})
}

func init() {
	command.Register(&HelpCommand{})
}
