package music

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/STWJXSX/Roxy-music/internal/command"
	"github.com/STWJXSX/Roxy-music/internal/music/track"
)

func trackLine(t *track.Track) string {
	return fmt.Sprintf("[%s](%s) `%s`", t.Title, t.URL, t.DurationString())
}

func nowPlayingEmbed(t *track.Track, volume int, paused bool) *discordgo.MessageEmbed {
	title := "🎵 Now Playing"
	if paused {
		title = "⏸️ Paused"
	}
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: trackLine(t),
		Color:       command.EmbedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Requested by %s · Volume %d%%", t.RequestedBy, volume),
		},
	}
	if t.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: t.Thumbnail}
	}
	return embed
}

func queueEmbed(current *track.Track, pending []*track.Track, loop, page string) *discordgo.MessageEmbed {
	var b strings.Builder
	if current != nil {
		b.WriteString("**Now playing**\n")
		b.WriteString(trackLine(current))
		b.WriteString("\n\n")
	}
	if len(pending) == 0 {
		b.WriteString("The queue is empty.")
	} else {
		b.WriteString("**Up next**\n")
		for i, t := range pending {
			fmt.Fprintf(&b, "`%d.` %s\n", i+1, trackLine(t))
		}
	}

	footer := fmt.Sprintf("Loop: %s", loop)
	if page != "" {
		footer += " · " + page
	}
	return &discordgo.MessageEmbed{
		Title:       "📜 Queue",
		Description: b.String(),
		Color:       command.EmbedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: footer},
	}
}
