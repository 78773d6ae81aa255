package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"phong-engine/internal/cli"
	"phong-engine/internal/window"
	"phong-engine/renderer"
)

func main() {
	if err := run(); err != nil {
		slog.Error("phong failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	opts, err := cli.Parse("phong", os.Args[1:])
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
	slog.Info("Starting", "variant", cfg.Lighting.Variant, "width", cfg.Window.Width, "height", cfg.Window.Height)

	winCfg := window.DefaultConfig()
	winCfg.Width = cfg.Window.Width
	winCfg.Height = cfg.Window.Height
	winCfg.Title = cfg.Window.Title
	winCfg.VSync = cfg.Window.VSync

	win, err := window.New(winCfg)
	if err != nil {
		return err
	}
	defer win.Destroy()

	engine, err := renderer.NewRenderEngine(win, cfg)
	if err != nil {
		return err
	}
	defer engine.Destroy()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = engine.Run(ctx, nil)
	if errors.Is(err, context.Canceled) {
		slog.Info("Interrupted")
		return nil
	}
	return err
}
