// /internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config holds everything the bot reads from the environment.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`

	// Spotify resolution is optional; without credentials Spotify URLs
	// are rejected with a "no tracks found" result.
	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`

	StoragePath string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	LogPath     string `env:"LOG_PATH" envDefault:"roxy.log"`

	DefaultVolume int `env:"DEFAULT_VOLUME" envDefault:"50"`

	// How long the bot stays after the queue empties before leaving,
	// and how long an empty voice channel is tolerated.
	QueueEndGrace       time.Duration `env:"QUEUE_END_GRACE" envDefault:"60s"`
	EmptyChannelTimeout time.Duration `env:"EMPTY_CHANNEL_TIMEOUT" envDefault:"60s"`

	ConnectTimeout time.Duration `env:"VOICE_CONNECT_TIMEOUT" envDefault:"30s"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("[Config] %v", err)
	}

	if cfg.DefaultVolume < 0 || cfg.DefaultVolume > 100 {
		log.Printf("[Config] DEFAULT_VOLUME %d out of range, using 50", cfg.DefaultVolume)
		cfg.DefaultVolume = 50
	}

	return cfg
}
