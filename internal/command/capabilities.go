package command

// Capabilities is the per-command requirement record. Every requirement
// is an explicit field; EvaluateCapabilities is the only place they are
// interpreted.
type Capabilities struct {
	// GuildOnly rejects invocations from DMs.
	GuildOnly bool
	// RequireVoice rejects users who are not in a voice channel.
	RequireVoice bool
	// RequirePremium gates the command on the guild's premium flag.
	RequirePremium bool
}

// EvaluateCapabilities checks an invocation against a command's
// requirement record. It returns the user-facing denial message for the
// first unmet requirement, or ok.
func EvaluateCapabilities(ctx *Context, caps Capabilities) (string, bool) {
	if caps.GuildOnly && ctx.GuildID() == "" {
		return "This command only works in a server.", false
	}
	if caps.RequireVoice {
		if _, err := ctx.UserVoiceChannel(); err != nil {
			return "You must be in a voice channel to use this command.", false
		}
	}
	if caps.RequirePremium && !ctx.Storage.IsPremiumGuild(ctx.GuildID()) {
		return "This command requires a premium server.", false
	}
	return "", true
}
