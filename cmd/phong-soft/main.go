package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"phong-engine/internal/cli"
)

func main() {
	if err := run(); err != nil {
		slog.Error("phong-soft failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	opts, err := cli.Parse("phong-soft", os.Args[1:])
	if err != nil {
		return err
	}
	logger, err := opts.Logger(os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	if opts.DumpConfig {
		return cfg.Encode(os.Stdout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	game, err := NewGame(ctx, cfg)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title + " (software)")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.Window.VSync)

	slog.Info("Starting", "variant", cfg.Lighting.Variant, "width", cfg.Window.Width, "height", cfg.Window.Height)
	return ebiten.RunGame(game)
}
