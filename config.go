package main

import (
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	windowTitle  = "Mandelbrot"
	windowWidth  = 800
	windowHeight = 600
)

type config struct {
	backend  string
	coloring string
	width    int
	height   int
	workers  int
	hz       int
	ticks    uint64
	hold     string
	hud      bool
	verbose  bool
}

func parseConfig(fs *flag.FlagSet, args []string) (config, error) {
	var cfg config
	fs.StringVar(&cfg.backend, "backend", "sdl", "Renderer: sdl, ebiten or headless.")
	fs.StringVar(&cfg.coloring, "coloring", "palette", "Coloring: palette (banded) or gradient (smooth).")
	fs.IntVar(&cfg.width, "width", windowWidth, "Initial window width.")
	fs.IntVar(&cfg.height, "height", windowHeight, "Initial window height.")
	fs.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "CPU rasterizer workers (sdl, headless).")
	fs.IntVar(&cfg.hz, "hz", 60, "Tick rate in headless mode.")
	fs.Uint64Var(&cfg.ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run until interrupted).")
	fs.StringVar(&cfg.hold, "hold", "", "Headless: keep the primary button pressed at x,y.")
	fs.BoolVar(&cfg.hud, "hud", false, "Show zoom, center and action.")
	fs.BoolVar(&cfg.verbose, "v", false, "Debug logging.")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	switch cfg.backend {
	case "sdl", "ebiten", "headless":
	default:
		return config{}, fmt.Errorf("unknown backend %q", cfg.backend)
	}
	if cfg.width <= 0 || cfg.height <= 0 {
		return config{}, fmt.Errorf("invalid size %dx%d", cfg.width, cfg.height)
	}
	if _, err := cfg.holdPoint(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// holdPoint parses -hold. It returns nil when the flag is empty.
func (c config) holdPoint() (*mgl32.Vec2, error) {
	if c.hold == "" {
		return nil, nil
	}
	xs, ys, ok := strings.Cut(c.hold, ",")
	if !ok {
		return nil, fmt.Errorf("-hold %q: want x,y", c.hold)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
	if err != nil {
		return nil, fmt.Errorf("-hold x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 32)
	if err != nil {
		return nil, fmt.Errorf("-hold y: %w", err)
	}
	return &mgl32.Vec2{float32(x), float32(y)}, nil
}
