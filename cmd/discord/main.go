// cmd/discord/main.go
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	_ "github.com/STWJXSX/Roxy-music/internal/command/core"
	_ "github.com/STWJXSX/Roxy-music/internal/command/music"

	"github.com/STWJXSX/Roxy-music/internal/config"
	"github.com/STWJXSX/Roxy-music/internal/discord"
	"github.com/STWJXSX/Roxy-music/internal/storage"
	v "github.com/STWJXSX/Roxy-music/internal/version"
)

func main() {
	cfg := config.New()

	log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.LogPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}))

	log.Printf("[INFO] Starting %v v%v...", v.AppName, v.AppVer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(ctx, cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, cfg, store); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
