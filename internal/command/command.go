package command

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/STWJXSX/Roxy-music/internal/music/engine"
	"github.com/STWJXSX/Roxy-music/internal/storage"
)

var ErrNotInVoice = errors.New("you must be in a voice channel to use this command")

type Command interface {
	Name() string
	Description() string
	Category() string
	Capabilities() Capabilities
	Run(ctx *Context) error
}

// SlashProvider is implemented by commands that take options beyond the
// bare name/description pair.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Context is what the dispatcher hands a command on execution.
type Context struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Engine  *engine.Engine
	Storage *storage.Storage
}

// GuildID is the guild the interaction came from, empty in DMs.
func (c *Context) GuildID() string {
	return c.Event.GuildID
}

// UserID is the invoking user, whichever envelope the event arrived in.
func (c *Context) UserID() string {
	if c.Event.Member != nil {
		return c.Event.Member.User.ID
	}
	if c.Event.User != nil {
		return c.Event.User.ID
	}
	return ""
}

// Username is the invoking user's display handle.
func (c *Context) Username() string {
	if c.Event.Member != nil {
		return c.Event.Member.User.Username
	}
	if c.Event.User != nil {
		return c.Event.User.Username
	}
	return ""
}

// UserVoiceChannel finds the voice channel the invoking user currently
// sits in via the session state cache.
func (c *Context) UserVoiceChannel() (string, error) {
	g, err := c.Session.State.Guild(c.GuildID())
	if err != nil {
		return "", err
	}
	for _, vs := range g.VoiceStates {
		if vs.UserID == c.UserID() {
			return vs.ChannelID, nil
		}
	}
	return "", ErrNotInVoice
}

// StringOption returns the named string option, empty when absent.
func (c *Context) StringOption(name string) string {
	for _, opt := range c.Event.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

// IntOption returns the named integer option and whether it was present.
func (c *Context) IntOption(name string) (int64, bool) {
	for _, opt := range c.Event.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionInteger {
			return opt.IntValue(), true
		}
	}
	return 0, false
}
