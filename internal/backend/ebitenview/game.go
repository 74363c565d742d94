package ebitenview

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/joshvictor1024/mandelview/internal/fractal"
	"github.com/joshvictor1024/mandelview/internal/input"
	"github.com/joshvictor1024/mandelview/internal/logging"
	"github.com/joshvictor1024/mandelview/internal/viewer"
)

var background = color.RGBA{A: 255}

type Config struct {
	Title         string
	Width, Height int
	// HUD overlays the viewer status.
	HUD bool
}

var mouseButtons = []struct {
	eb ebiten.MouseButton
	b  input.Button
}{
	{ebiten.MouseButtonLeft, input.ButtonPrimary},
	{ebiten.MouseButtonRight, input.ButtonSecondary},
	{ebiten.MouseButtonMiddle, input.ButtonMiddle},
	{ebiten.MouseButton3, input.ButtonOther},
	{ebiten.MouseButton4, input.ButtonOther},
}

type game struct {
	b        *Backend
	coloring fractal.Coloring
	cfg      Config
	v        *viewer.Viewer
	poll     poller
	err      error
}

// readSnapshot collects this tick's pointer state from ebiten.
func readSnapshot() snapshot {
	x, y := ebiten.CursorPosition()
	s := snapshot{cursor: mgl32.Vec2{float32(x), float32(y)}}
	for _, m := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(m.eb) {
			s.pressed = append(s.pressed, m.b)
		}
		if inpututil.IsMouseButtonJustReleased(m.eb) {
			s.released = append(s.released, m.b)
		}
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		s.touches = append(s.touches, touchPoint{id: uint64(id), pos: mgl32.Vec2{float32(tx), float32(ty)}})
	}
	return s
}

func (g *game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.v == nil {
		v, err := viewer.New(g.b, g.coloring)
		if err != nil {
			return err
		}
		g.v = v
		logging.Logger().Info("ebiten window open", "coloring", g.coloring.Name())
	}
	g.poll.apply(g.v, readSnapshot())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.v == nil || g.err != nil {
		return
	}
	g.b.screen = screen
	defer func() { g.b.screen = nil }()

	if err := g.v.Tick(); err != nil {
		logging.Logger().Error("frame", "err", err)
		g.err = err
		return
	}
	if g.cfg.HUD {
		ebitenutil.DebugPrint(screen, g.v.Status())
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.b.size = mgl32.Vec2{float32(outsideWidth), float32(outsideHeight)}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed or a frame fails.
func Run(c fractal.Coloring, cfg Config) error {
	g := &game{
		b:        newBackend(cfg.Width, cfg.Height),
		coloring: c,
		cfg:      cfg,
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}
