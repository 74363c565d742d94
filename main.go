package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/joshvictor1024/mandelview/internal/backend/ebitenview"
	"github.com/joshvictor1024/mandelview/internal/backend/headless"
	"github.com/joshvictor1024/mandelview/internal/backend/sdlview"
	"github.com/joshvictor1024/mandelview/internal/fractal"
	"github.com/joshvictor1024/mandelview/internal/logging"
)

func init() {
	// SDL and ebiten event pumps must stay on the thread that created the window.
	runtime.LockOSThread()
}

func run(cfg config) error {
	coloring, err := fractal.ByName(cfg.coloring)
	if err != nil {
		return err
	}

	switch cfg.backend {
	case "ebiten":
		return ebitenview.Run(coloring, ebitenview.Config{
			Title:  windowTitle,
			Width:  cfg.width,
			Height: cfg.height,
			HUD:    cfg.hud,
		})
	case "headless":
		hold, err := cfg.holdPoint()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = headless.Run(ctx, coloring, headless.Config{
			Width:   cfg.width,
			Height:  cfg.height,
			Hz:      cfg.hz,
			Ticks:   cfg.ticks,
			Workers: cfg.workers,
			Hold:    hold,
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	default:
		return sdlview.Run(coloring, sdlview.Config{
			Title:   windowTitle,
			Width:   cfg.width,
			Height:  cfg.height,
			Workers: cfg.workers,
			HUD:     cfg.hud,
		})
	}
}

func main() {
	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		logging.Logger().Error("mandelview", "backend", cfg.backend, "err", err)
		os.Exit(1)
	}
}
