package discord

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/STWJXSX/Roxy-music/internal/command"
	"github.com/STWJXSX/Roxy-music/internal/music/engine"
	"github.com/STWJXSX/Roxy-music/internal/music/resolver"
	"github.com/STWJXSX/Roxy-music/internal/music/track"
)

// notifier posts playback announcements to the guild's bound text
// channel. Send failures are logged and swallowed; playback never
// depends on a message landing.
type notifier struct {
	dg *discordgo.Session
}

func NewNotifier(dg *discordgo.Session) engine.Notifier {
	return &notifier{dg: dg}
}

func (n *notifier) send(channelID string, embed *discordgo.MessageEmbed) {
	if channelID == "" {
		return
	}
	if _, err := n.dg.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Printf("[Notifier] Failed to announce in channel %s: %v", channelID, err)
	}
}

func (n *notifier) TrackStarted(channelID string, t *track.Track) {
	embed := &discordgo.MessageEmbed{
		Title:       "🎵 Now Playing",
		Description: fmt.Sprintf("[%s](%s) `%s`", t.Title, t.URL, t.DurationString()),
		Color:       command.EmbedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Requested by " + t.RequestedBy},
	}
	if t.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: t.Thumbnail}
	}
	n.send(channelID, embed)
}

func (n *notifier) PlaylistProgress(channelID, name string, loaded, total int) {
	n.send(channelID, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("📥 **%s**: %d/%d tracks queued...", name, loaded, total),
		Color:       command.EmbedColor,
	})
}

func (n *notifier) PlaylistLoaded(channelID string, info *resolver.PlaylistInfo, loaded, failed int) {
	name := "playlist"
	if info != nil {
		name = info.Name
	}
	desc := fmt.Sprintf("📀 **%s** fully queued: %d tracks.", name, loaded)
	if failed > 0 {
		desc += fmt.Sprintf(" %d could not be matched.", failed)
	}
	n.send(channelID, &discordgo.MessageEmbed{Description: desc, Color: command.EmbedColor})
}

func (n *notifier) QueueEnded(channelID string, grace time.Duration) {
	n.send(channelID, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("🏁 Queue finished. Leaving in %d seconds unless you play something.", int(grace.Seconds())),
		Color:       command.EmbedColor,
	})
}

func (n *notifier) LeftChannel(channelID string, reason engine.LeaveReason) {
	desc := "👋 Left the voice channel."
	if reason == engine.LeaveChannelEmpty {
		desc = "👋 Everyone left, so did I."
	}
	n.send(channelID, &discordgo.MessageEmbed{Description: desc, Color: command.EmbedColor})
}
