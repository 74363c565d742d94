package sdlview

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/mandelview/internal/input"
)

// eventSink is the part of the viewer that receives input.
type eventSink interface {
	PointerDown(b input.Button, x, y float32)
	PointerUp(b input.Button, x, y float32)
	PointerMove(x, y float32)
	Touch(phase input.TouchPhase, id uint64, x, y float32)
}

func mouseButton(b uint8) input.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonPrimary
	case sdl.BUTTON_RIGHT:
		return input.ButtonSecondary
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	}
	return input.ButtonOther
}

func touchPhase(typ uint32) (input.TouchPhase, bool) {
	switch typ {
	case sdl.FINGERDOWN:
		return input.TouchStarted, true
	case sdl.FINGERMOTION:
		return input.TouchMoved, true
	case sdl.FINGERUP:
		return input.TouchEnded, true
	}
	return 0, false
}

// dispatch forwards one SDL event to s and reports whether the program
// should quit. Finger coordinates arrive normalized to [0, 1] and are scaled
// to screen.
func dispatch(s eventSink, e sdl.Event, screen mgl32.Vec2) (quit bool) {
	switch t := e.(type) {
	case *sdl.QuitEvent:
		return true
	case *sdl.KeyboardEvent:
		return t.Type == sdl.KEYDOWN && t.Keysym.Sym == sdl.K_ESCAPE
	case *sdl.MouseButtonEvent:
		// Touch input is handled through finger events.
		if t.Which == sdl.TOUCH_MOUSEID {
			return false
		}
		b := mouseButton(t.Button)
		if t.Type == sdl.MOUSEBUTTONDOWN {
			s.PointerDown(b, float32(t.X), float32(t.Y))
		} else if t.Type == sdl.MOUSEBUTTONUP {
			s.PointerUp(b, float32(t.X), float32(t.Y))
		}
	case *sdl.MouseMotionEvent:
		if t.Which == sdl.TOUCH_MOUSEID {
			return false
		}
		s.PointerMove(float32(t.X), float32(t.Y))
	case *sdl.TouchFingerEvent:
		phase, ok := touchPhase(t.Type)
		if !ok {
			return false
		}
		s.Touch(phase, uint64(t.FingerID), t.X*screen[0], t.Y*screen[1])
	}
	return false
}
