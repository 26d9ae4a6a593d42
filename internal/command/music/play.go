package music

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/STWJXSX/Roxy-music/internal/command"
	"github.com/STWJXSX/Roxy-music/internal/music/engine"
)

type PlayCommand struct{}

func (c *PlayCommand) Name() string        { return "play" }
func (c *PlayCommand) Description() string { return "Play a track, playlist or album" }
func (c *PlayCommand) Category() string    { return "🎵 Music" }

func (c *PlayCommand) Capabilities() command.Capabilities {
	return command.Capabilities{GuildOnly: true, RequireVoice: true}
}

func (c *PlayCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "YouTube/Spotify link or search terms",
				Required:    true,
			},
		},
	}
}

func (c *PlayCommand) Run(ctx *command.Context) error {
	query := ctx.StringOption("query")
	if query == "" {
		return command.RespondEphemeral(ctx, "Tell me what to play.")
	}

	voiceChannel, err := ctx.UserVoiceChannel()
	if err != nil {
		return command.RespondEphemeral(ctx, "You must be in a voice channel to use this command.")
	}

	// Resolution hits the network, answer within the interaction window.
	if err := command.RespondDeferred(ctx); err != nil {
		return err
	}

	res, err := ctx.Engine.Play(ctx.GuildID(), voiceChannel, ctx.Event.ChannelID, query, ctx.Username())
	if err != nil {
		if errors.Is(err, engine.ErrNoTracksFound) {
			return command.Followup(ctx, fmt.Sprintf("😿 Nothing found for **%s**.", query))
		}
		return command.Followup(ctx, fmt.Sprintf("😿 %v", err))
	}

	switch {
	case res.Playlist != nil:
		return command.Followup(ctx, fmt.Sprintf(
			"📀 Queueing **%s** (%d tracks), starting with **%s**.",
			res.Playlist.Name, res.Playlist.TotalTracks, res.Track.Title,
		))
	case res.Started:
		return command.Followup(ctx, fmt.Sprintf("🎵 Playing **%s**.", res.Track.Title))
	default:
		return command.Followup(ctx, fmt.Sprintf("➕ Added **%s** to the queue (#%d).", res.Track.Title, res.Position+1))
	}
}

func init() {
	command.Register(&PlayCommand{})
}
