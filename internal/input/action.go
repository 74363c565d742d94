// Package input turns pointer and touch events into a zoom action and applies
// that action to the view once per frame.
package input

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind tags an Action.
type Kind uint8

const (
	Idle Kind = iota
	ZoomingIn
	ZoomingOut
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case ZoomingIn:
		return "zoom-in"
	case ZoomingOut:
		return "zoom-out"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Action is what the pointer is currently asking for. Anchor is the
// normalized pointer position and is zero for Idle. Actions are values and
// are always replaced whole.
type Action struct {
	Kind   Kind
	Anchor mgl32.Vec2
}

func IdleAction() Action { return Action{} }

func ZoomInAt(anchor mgl32.Vec2) Action { return Action{Kind: ZoomingIn, Anchor: anchor} }

func ZoomOutAt(anchor mgl32.Vec2) Action { return Action{Kind: ZoomingOut, Anchor: anchor} }

func (a Action) Active() bool { return a.Kind != Idle }

func (a Action) String() string {
	if a.Kind == Idle {
		return a.Kind.String()
	}
	return fmt.Sprintf("%s(%.4f, %.4f)", a.Kind, a.Anchor[0], a.Anchor[1])
}
