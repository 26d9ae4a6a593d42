package command

import "github.com/bwmarrin/discordgo"

const EmbedColor = 0x9b59b6

// Respond sends a public message response to an interaction.
func Respond(ctx *Context, content string) error {
	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

// RespondEphemeral sends an ephemeral message response to an interaction.
func RespondEphemeral(ctx *Context, content string) error {
	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondEmbed sends a public embed response to an interaction.
func RespondEmbed(ctx *Context, embed *discordgo.MessageEmbed) error {
	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
}

// RespondDeferred acknowledges an interaction without an immediate reply,
// for commands that do network work before answering.
func RespondDeferred(ctx *Context) error {
	return ctx.Session.InteractionRespond(ctx.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

// Followup sends a public followup after a deferred response.
func Followup(ctx *Context, content string) error {
	_, err := ctx.Session.FollowupMessageCreate(ctx.Event.Interaction, false, &discordgo.WebhookParams{Content: content})
	return err
}

// FollowupEmbed sends a public embed followup after a deferred response.
func FollowupEmbed(ctx *Context, embed *discordgo.MessageEmbed) error {
	_, err := ctx.Session.FollowupMessageCreate(ctx.Event.Interaction, false, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	return err
}
