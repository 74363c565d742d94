package input

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/joshvictor1024/mandelview/internal/logging"
	"github.com/joshvictor1024/mandelview/internal/view"
)

// ZoomRate is the per-frame zoom factor while a zoom action is active.
const ZoomRate = 1.01

type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
	// ButtonOther is any further button, such as the side buttons.
	ButtonOther
)

type TouchPhase uint8

const (
	TouchStarted TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

// Normalize maps a window position to a zoom anchor. The cubic curve is flat
// around the middle of the screen and steep toward the edges; the exact
// center maps to (0, 0).
func Normalize(pos, screen mgl32.Vec2) mgl32.Vec2 {
	dx := pos[0]/screen[0] - 0.5
	dy := pos[1]/screen[1] - 0.5
	return mgl32.Vec2{4 * dx * dx * dx, 4 * dy * dy * dy}
}

// Machine is the interaction state machine. It is driven from the event loop
// goroutine only.
type Machine struct {
	action Action
}

func (m *Machine) Action() Action { return m.action }

func (m *Machine) set(a Action) {
	if a.Kind != m.action.Kind {
		logging.Logger().Debug("action", "from", m.action.Kind, "to", a)
	}
	m.action = a
}

// PointerDown starts zooming in on the primary button and zooming out on the
// secondary one. Other buttons are ignored.
func (m *Machine) PointerDown(b Button, pos, screen mgl32.Vec2) {
	anchor := Normalize(pos, screen)
	switch b {
	case ButtonPrimary:
		m.set(ZoomInAt(anchor))
	case ButtonSecondary:
		m.set(ZoomOutAt(anchor))
	}
}

// PointerUp stops any zoom, whichever button was released.
func (m *Machine) PointerUp(Button, mgl32.Vec2, mgl32.Vec2) {
	m.set(IdleAction())
}

// PointerMove retargets an active zoom to the new pointer position.
func (m *Machine) PointerMove(pos, screen mgl32.Vec2) {
	if !m.action.Active() {
		return
	}
	m.set(Action{Kind: m.action.Kind, Anchor: Normalize(pos, screen)})
}

// Touch handles a single touch point. Touch has no zoom-out gesture: both
// start and move zoom in, so a move after a mouse zoom-out also flips it.
func (m *Machine) Touch(phase TouchPhase, _ uint64, pos, screen mgl32.Vec2) {
	switch phase {
	case TouchStarted, TouchMoved:
		m.set(ZoomInAt(Normalize(pos, screen)))
	default:
		m.set(IdleAction())
	}
}

// Step applies the current action to s for one frame.
func (m *Machine) Step(s *view.State) {
	a := m.action.Anchor
	switch m.action.Kind {
	case ZoomingIn:
		s.Zoom *= ZoomRate
		s.Center[0] -= a[0] / s.Zoom
		s.Center[1] += a[1] / s.Zoom
	case ZoomingOut:
		s.Zoom /= ZoomRate
		s.Center[0] += a[0] / s.Zoom
		s.Center[1] -= a[1] / s.Zoom
	}
}
