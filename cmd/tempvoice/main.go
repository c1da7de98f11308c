package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sglre6355/tempvoice/internal/bot"
	_ "github.com/sglre6355/tempvoice/internal/modules/auto_voice"
	_ "github.com/sglre6355/tempvoice/internal/modules/health"
)

// version is set at build time via ldflags:
// go build -ldflags "-X main.version=1.0.0" ./cmd/tempvoice
var version = "dev"

func main() {
	// A missing .env file is fine; the environment may be set directly.
	envErr := godotenv.Load()

	// Load configuration
	cfg, cfgErr := bot.LoadConfig()

	level := slog.LevelInfo
	if cfg != nil {
		level = cfg.LogLevel
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("starting tempvoice", "version", version)

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", envErr)
	}
	if cfgErr != nil {
		slog.Error("failed to load config", "error", cfgErr)
		os.Exit(1)
	}

	// Create and configure bot
	b := bot.NewBot(cfg)
	b.LoadModules()

	// Start bot
	if err := b.Start(); err != nil {
		slog.Error("failed to start bot", "error", err)
		if stopErr := b.Stop(); stopErr != nil {
			slog.Error("failed to shutdown", "error", stopErr)
		}
		os.Exit(1)
	}

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("received termination signal, shutting down")
	if err := b.Stop(); err != nil {
		slog.Error("failed to shutdown", "error", err)
	}

	slog.Info("completed bot shutdown")
	os.Exit(0)
}
