package ebitenview

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/joshvictor1024/mandelview/internal/input"
)

// eventSink is the part of the viewer that receives input.
type eventSink interface {
	PointerDown(b input.Button, x, y float32)
	PointerUp(b input.Button, x, y float32)
	PointerMove(x, y float32)
	Touch(phase input.TouchPhase, id uint64, x, y float32)
}

type touchPoint struct {
	id  uint64
	pos mgl32.Vec2
}

// snapshot is the polled pointer state for one tick.
type snapshot struct {
	cursor   mgl32.Vec2
	pressed  []input.Button
	released []input.Button
	touches  []touchPoint
}

// poller turns successive snapshots into discrete events. ebiten only
// exposes current state, so moves and touch ends are found by diffing
// against the previous tick.
type poller struct {
	cursor     mgl32.Vec2
	haveCursor bool
	touches    map[uint64]mgl32.Vec2
}

func (p *poller) apply(s eventSink, snap snapshot) {
	if p.haveCursor && snap.cursor != p.cursor {
		s.PointerMove(snap.cursor[0], snap.cursor[1])
	}
	p.cursor, p.haveCursor = snap.cursor, true

	for _, b := range snap.pressed {
		s.PointerDown(b, snap.cursor[0], snap.cursor[1])
	}
	for _, b := range snap.released {
		s.PointerUp(b, snap.cursor[0], snap.cursor[1])
	}

	if p.touches == nil {
		p.touches = make(map[uint64]mgl32.Vec2)
	}
	active := make(map[uint64]bool, len(snap.touches))
	for _, t := range snap.touches {
		active[t.id] = true
		last, ok := p.touches[t.id]
		switch {
		case !ok:
			s.Touch(input.TouchStarted, t.id, t.pos[0], t.pos[1])
		case last != t.pos:
			s.Touch(input.TouchMoved, t.id, t.pos[0], t.pos[1])
		}
		p.touches[t.id] = t.pos
	}
	for id, last := range p.touches {
		if !active[id] {
			s.Touch(input.TouchEnded, id, last[0], last[1])
			delete(p.touches, id)
		}
	}
}
