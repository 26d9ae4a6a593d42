package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/STWJXSX/Roxy-music/internal/command"
	"github.com/STWJXSX/Roxy-music/internal/config"
	"github.com/STWJXSX/Roxy-music/internal/music/engine"
	"github.com/STWJXSX/Roxy-music/internal/music/queue"
	"github.com/STWJXSX/Roxy-music/internal/music/resolver"
	"github.com/STWJXSX/Roxy-music/internal/storage"
)

// Bot is the Discord front of the playback engine.
type Bot struct {
	dg      *discordgo.Session
	cfg     *config.Config
	storage *storage.Storage
	engine  *engine.Engine
}

// StartBot wires the session, resolver and engine together and runs
// until the context is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Storage) error {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	yt := resolver.NewYouTube()
	var sp *resolver.Spotify
	if cfg.SpotifyClientID != "" {
		sp, err = resolver.NewSpotify(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret)
		if err != nil {
			log.Printf("[Bot] Spotify disabled: %v", err)
			sp = nil
		}
	}

	registry := queue.NewRegistry(float64(cfg.DefaultVolume) / 100)
	eng := engine.New(registry, resolver.New(yt, sp), NewVoiceConnector(dg), engine.Options{
		Notifier:            NewNotifier(dg),
		Stats:               store,
		DefaultStay:         store.DefaultStay,
		QueueEndGrace:       cfg.QueueEndGrace,
		EmptyChannelTimeout: cfg.EmptyChannelTimeout,
		ConnectTimeout:      cfg.ConnectTimeout,
	})

	b := &Bot{dg: dg, cfg: cfg, storage: store, engine: eng}
	return b.run(ctx)
}

func (b *Bot) run(ctx context.Context) error {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages

	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onInteractionCreate)
	b.dg.AddHandler(b.onVoiceStateUpdate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	log.Println("[Bot] Shutdown signal received, cleaning up...")
	b.engine.Registry().DestroyAll()
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, e *discordgo.Ready) {
	log.Printf("[Bot] Logged in as %s, serving %d guilds", e.User.Username, len(e.Guilds))

	if err := s.UpdateGameStatus(0, "🎵 /play"); err != nil {
		log.Printf("[Bot] Failed to set status: %v", err)
	}

	if err := b.registerSlashCommands(s); err != nil {
		log.Printf("[Bot] Failed to register commands: %v", err)
	}
}

// registerSlashCommands overwrites the global command set with whatever
// is in the registry. Commands without an explicit definition get the
// bare name/description pair.
func (b *Bot) registerSlashCommands(s *discordgo.Session) error {
	var defs []*discordgo.ApplicationCommand
	for _, cmd := range command.All() {
		if sp, ok := cmd.(command.SlashProvider); ok {
			if def := sp.SlashDefinition(); def != nil {
				defs = append(defs, def)
				continue
			}
		}
		defs = append(defs, &discordgo.ApplicationCommand{
			Name:        cmd.Name(),
			Description: cmd.Description(),
			Type:        discordgo.ChatApplicationCommand,
		})
	}

	_, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, "", defs)
	if err == nil {
		log.Printf("[Bot] Registered %d slash commands", len(defs))
	}
	return err
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, e *discordgo.InteractionCreate) {
	if e.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := e.ApplicationCommandData().Name
	cmd, ok := command.Get(name)
	if !ok {
		log.Printf("[Bot] Unknown command %q", name)
		return
	}

	ctx := &command.Context{
		Session: s,
		Event:   e,
		Engine:  b.engine,
		Storage: b.storage,
	}
	if msg, ok := command.EvaluateCapabilities(ctx, cmd.Capabilities()); !ok {
		if err := command.RespondEphemeral(ctx, msg); err != nil {
			log.Printf("[Bot] Failed to respond to /%s: %v", name, err)
		}
		return
	}
	if err := cmd.Run(ctx); err != nil {
		log.Printf("[Bot] Command /%s failed: %v", name, err)
	}
}
