package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/STWJXSX/Roxy-music/internal/music/queue"
)

// voiceConnector adapts a discordgo session to the playback engine's
// Connector.
type voiceConnector struct {
	dg *discordgo.Session
}

func NewVoiceConnector(dg *discordgo.Session) *voiceConnector {
	return &voiceConnector{dg: dg}
}

func (c *voiceConnector) Join(guildID, channelID string) (queue.VoiceSession, error) {
	vc, err := c.dg.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return nil, err
	}
	return &voiceSession{vc: vc}, nil
}

type voiceSession struct {
	vc *discordgo.VoiceConnection
}

func (v *voiceSession) Send() chan<- []byte {
	return v.vc.OpusSend
}

func (v *voiceSession) Speaking(b bool) error {
	return v.vc.Speaking(b)
}

func (v *voiceSession) Disconnect() error {
	return v.vc.Disconnect()
}
