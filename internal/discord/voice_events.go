package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// onVoiceStateUpdate watches two things: listeners leaving the bot alone
// in a channel, and the bot being server-muted or force-disconnected.
func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, e *discordgo.VoiceStateUpdate) {
	if e.GuildID == "" || s.State.User == nil {
		return
	}

	if e.UserID == s.State.User.ID {
		b.onOwnVoiceUpdate(s, e)
		return
	}

	if _, ok := b.engine.Registry().Get(e.GuildID); !ok {
		return
	}
	botChannel := b.botVoiceChannel(s, e.GuildID)
	if botChannel == "" {
		return
	}

	// Only moves touching the bot's channel matter.
	touched := e.ChannelID == botChannel ||
		(e.BeforeUpdate != nil && e.BeforeUpdate.ChannelID == botChannel)
	if !touched {
		return
	}

	if b.channelEmpty(s, e.GuildID, botChannel) {
		guildID := e.GuildID
		b.engine.ChannelEmptied(guildID, func() bool {
			return b.channelEmpty(s, guildID, botChannel)
		})
	} else {
		b.engine.ChannelOccupied(e.GuildID)
	}
}

func (b *Bot) onOwnVoiceUpdate(s *discordgo.Session, e *discordgo.VoiceStateUpdate) {
	q, ok := b.engine.Registry().Get(e.GuildID)
	if !ok {
		return
	}

	// Kicked or moved out of voice entirely.
	if e.ChannelID == "" {
		log.Printf("[Bot] Disconnected from voice in guild %s, tearing down", e.GuildID)
		b.engine.Registry().Destroy(e.GuildID)
		return
	}

	// Server mute pauses, unmute resumes only what the mute paused.
	if e.Mute {
		if q.SetPaused(true) {
			q.SetPausedByMute(true)
			log.Printf("[Bot] Server-muted in guild %s, pausing", e.GuildID)
		}
		return
	}
	if q.PausedByMute() {
		q.SetPaused(false)
		log.Printf("[Bot] Unmuted in guild %s, resuming", e.GuildID)
	}
}

// botVoiceChannel returns the channel the bot currently occupies in the
// guild, empty when it is not in voice.
func (b *Bot) botVoiceChannel(s *discordgo.Session, guildID string) string {
	g, err := s.State.Guild(guildID)
	if err != nil {
		return ""
	}
	for _, vs := range g.VoiceStates {
		if vs.UserID == s.State.User.ID {
			return vs.ChannelID
		}
	}
	return ""
}

// channelEmpty reports whether no listener besides the bot remains.
func (b *Bot) channelEmpty(s *discordgo.Session, guildID, channelID string) bool {
	g, err := s.State.Guild(guildID)
	if err != nil {
		return false
	}
	for _, vs := range g.VoiceStates {
		if vs.ChannelID == channelID && vs.UserID != s.State.User.ID {
			return false
		}
	}
	return true
}
